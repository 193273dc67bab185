// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

const registryArxiv = "arxiv"

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

func arxivURL(id string) string {
	return arxivAPIBase + "?id_list=" + url.QueryEscape(id)
}

// arXiv Atom feed XML structures. encoding/xml matches local element
// names regardless of namespace, which tolerates both namespaced and
// bare feed variants.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// arxivParser returns a parse function bound to the looked-up ID. The
// arXiv API reports unknown IDs inside a well-formed feed (an empty or
// title-less entry) rather than with a 404, so absence is detected at
// parse level and surfaced as errNotFound.
func arxivParser(id string) func([]byte) (types.SourceMetadata, error) {
	return func(body []byte) (types.SourceMetadata, error) {
		var feed arxivFeed
		if err := xml.Unmarshal(body, &feed); err != nil {
			return types.SourceMetadata{}, fmt.Errorf("parsing arxiv feed: %w", err)
		}

		if len(feed.Entries) == 0 {
			return types.SourceMetadata{}, errNotFound
		}

		entry := feed.Entries[0]
		title := strings.TrimSpace(entry.Title)
		if title == "" || strings.HasPrefix(strings.ToLower(title), "error") {
			return types.SourceMetadata{}, errNotFound
		}

		md := types.SourceMetadata{
			Title:      title,
			Identifier: id,
			URL:        strings.TrimSpace(entry.ID),
		}
		if md.URL == "" {
			md.URL = "https://arxiv.org/abs/" + id
		}

		for _, a := range entry.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				md.Authors = append(md.Authors, name)
			}
		}

		if len(entry.Published) >= 4 {
			if y, err := strconv.Atoi(entry.Published[:4]); err == nil {
				md.Year = y
			}
		}

		return md, nil
	}
}
