// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

const registryOpenLibrary = "openlibrary"

// openLibraryAPIBase is the Open Library book endpoint root. Declared
// as a var so tests can substitute an httptest server.
var openLibraryAPIBase = "https://openlibrary.org"

func openLibraryURL(isbn string) string {
	return openLibraryAPIBase + "/isbn/" + isbn + ".json"
}

// openLibraryName accepts both payload shapes the API emits for people
// and publishers: a plain name string or a {"name": ...} object.
type openLibraryName struct {
	Name string
}

func (n *openLibraryName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	n.Name = obj.Name
	return nil
}

type openLibraryBook struct {
	Title        string            `json:"title"`
	Publishers   []openLibraryName `json:"publishers"`
	Authors      []openLibraryName `json:"authors"`
	Contributors []openLibraryName `json:"contributors"`
	PublishDate  string            `json:"publish_date"`
}

// openLibraryParser returns a parse function bound to the looked-up
// ISBN, which becomes the canonical identifier.
func openLibraryParser(isbn string) func([]byte) (types.SourceMetadata, error) {
	return func(body []byte) (types.SourceMetadata, error) {
		var book openLibraryBook
		if err := json.Unmarshal(body, &book); err != nil {
			return types.SourceMetadata{}, fmt.Errorf("parsing openlibrary response: %w", err)
		}

		md := types.SourceMetadata{
			Title:      strings.TrimSpace(book.Title),
			Identifier: isbn,
			URL:        openLibraryAPIBase + "/isbn/" + isbn,
		}

		if len(book.Publishers) > 0 {
			md.Publisher = strings.TrimSpace(book.Publishers[0].Name)
		}

		// Authors and contributors share the heterogeneous name shape;
		// authors win when both are present.
		people := book.Authors
		if len(people) == 0 {
			people = book.Contributors
		}
		for _, p := range people {
			if name := strings.TrimSpace(p.Name); name != "" {
				md.Authors = append(md.Authors, name)
			}
		}

		// Publish dates range from "2004" to "Dec 01, 2004"; only a
		// leading four-digit year is trusted.
		if len(book.PublishDate) >= 4 {
			if y, err := strconv.Atoi(book.PublishDate[:4]); err == nil {
				md.Year = y
			}
		}

		return md, nil
	}
}
