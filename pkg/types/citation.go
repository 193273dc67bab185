// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceType classifies a cited source and selects its required-field set.
type SourceType string

const (
	SourceJournal    SourceType = "journal"
	SourceBook       SourceType = "book"
	SourceConference SourceType = "conference"
	SourceWebpage    SourceType = "webpage"
	SourceThesis     SourceType = "thesis"
)

// CitationClaim is the caller-supplied view of one citation: its
// identifiers and the metadata the citing document claims for it. It is
// immutable input to the pipeline.
type CitationClaim struct {
	// SourceID identifies the source record within the owning document.
	SourceID string `json:"source_id" yaml:"source_id"`

	// DOI, ISBN, and ArxivID are the claimed identifiers. At most one
	// drives existence checking, by precedence DOI > ISBN > arXiv.
	DOI     string `json:"doi,omitempty" yaml:"doi,omitempty"`
	ISBN    string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// Authors lists the claimed authors in citation order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the claimed publication year. Zero means unclaimed.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// SourceType selects the required-field set for layer-1 checks.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// Data is the free-form citation metadata map (title, journal,
	// url, access_date, ...).
	Data map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// PrimaryIdentifier returns the identifier that drives existence
// checking, by the fixed precedence DOI > ISBN > arXiv. The second
// return value is empty when the claim carries no identifier.
func (c CitationClaim) PrimaryIdentifier() (kind, value string) {
	switch {
	case c.DOI != "":
		return "doi", c.DOI
	case c.ISBN != "":
		return "isbn", c.ISBN
	case c.ArxivID != "":
		return "arxiv", c.ArxivID
	default:
		return "", ""
	}
}

// SourceMetadata is the canonical record retrieved from a registry.
// Produced only by the existence checker and never mutated afterward.
type SourceMetadata struct {
	// Title is the registered work title.
	Title string `json:"title" yaml:"title"`

	// Authors lists registered authors, normalized to plain strings.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the registered publication year. Zero when the registry
	// did not report one.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Journal is the container title (journals, proceedings).
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Publisher is the publisher name (books).
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Identifier is the registry's canonical identifier for the work.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// URL is the canonical landing URL, when the registry provides one.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}
