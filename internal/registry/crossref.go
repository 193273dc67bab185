// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

const registryCrossref = "crossref"

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

// crossrefURL builds the works lookup URL. The mailto parameter opts
// into Crossref's polite pool when a contact email is configured.
func crossrefURL(doi, email string) string {
	u := crossrefAPIBase + doi
	if email != "" {
		u += "?mailto=" + url.QueryEscape(email)
	}
	return u
}

// Crossref works API JSON structures. Only the fields the pipeline
// normalizes are declared; everything else is ignored.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title           []string         `json:"title"`
	Author          []crossrefAuthor `json:"author"`
	Published       crossrefDate     `json:"published"`
	PublishedPrint  crossrefDate     `json:"published-print"`
	PublishedOnline crossrefDate     `json:"published-online"`
	ContainerTitle  []string         `json:"container-title"`
	Publisher       string           `json:"publisher"`
	DOI             string           `json:"DOI"`
	URL             string           `json:"URL"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// year returns the leading date-parts element, or zero when absent.
func (d crossrefDate) year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

// parseCrossref normalizes a Crossref works payload into the canonical
// metadata shape, tolerating partial or missing fields.
func parseCrossref(body []byte) (types.SourceMetadata, error) {
	var cr crossrefResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return types.SourceMetadata{}, fmt.Errorf("parsing crossref response: %w", err)
	}
	work := cr.Message

	md := types.SourceMetadata{
		Identifier: work.DOI,
		URL:        work.URL,
		Publisher:  work.Publisher,
	}

	if len(work.Title) > 0 {
		md.Title = strings.TrimSpace(work.Title[0])
	}
	if len(work.ContainerTitle) > 0 {
		md.Journal = strings.TrimSpace(work.ContainerTitle[0])
	}

	for _, a := range work.Author {
		switch {
		case a.Family != "" && a.Given != "":
			md.Authors = append(md.Authors, a.Family+", "+a.Given)
		case a.Family != "":
			md.Authors = append(md.Authors, a.Family)
		case a.Given != "":
			md.Authors = append(md.Authors, a.Given)
		}
	}

	// First populated date block wins: published, then print, then online.
	for _, d := range []crossrefDate{work.Published, work.PublishedPrint, work.PublishedOnline} {
		if y := d.year(); y != 0 {
			md.Year = y
			break
		}
	}

	if md.URL == "" && work.DOI != "" {
		md.URL = "https://doi.org/" + work.DOI
	}

	return md, nil
}
