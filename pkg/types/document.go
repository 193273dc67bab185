// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is a writing project whose citations get validated. One
// author per document; cross-document conflict checks compare against
// every other document in the store.
type Document struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	AuthorName string `json:"author_name" yaml:"author_name"`
}

// Source is a stored citation record belonging to a document. Authors
// and CitationData persist as JSON columns; Deleted soft-deletes the
// record so conflict checks skip it without losing history.
type Source struct {
	ID           string            `json:"id" yaml:"id"`
	DocumentID   string            `json:"document_id" yaml:"document_id"`
	SourceType   SourceType        `json:"source_type" yaml:"source_type"`
	Title        string            `json:"title" yaml:"title"`
	Authors      []string          `json:"authors" yaml:"authors"`
	Year         int               `json:"year" yaml:"year"`
	DOI          string            `json:"doi,omitempty" yaml:"doi,omitempty"`
	ISBN         string            `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	ArxivID      string            `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
	Content      string            `json:"content,omitempty" yaml:"content,omitempty"`
	CitationData map[string]string `json:"citation_data,omitempty" yaml:"citation_data,omitempty"`
	Deleted      bool              `json:"deleted,omitempty" yaml:"deleted,omitempty"`
}

// Claim converts the stored record to the claim shape the validation
// layers consume. Structured columns win over citation_data entries.
func (s Source) Claim() CitationClaim {
	claim := CitationClaim{
		SourceID:   s.ID,
		DOI:        s.DOI,
		ISBN:       s.ISBN,
		ArxivID:    s.ArxivID,
		Authors:    s.Authors,
		Year:       s.Year,
		SourceType: s.SourceType,
		Data:       map[string]string{},
	}
	for k, v := range s.CitationData {
		claim.Data[k] = v
	}
	if s.Title != "" {
		claim.Data["title"] = s.Title
	}
	if claim.DOI == "" {
		claim.DOI = s.CitationData["doi"]
	}
	if claim.ISBN == "" {
		claim.ISBN = s.CitationData["isbn"]
	}
	if claim.ArxivID == "" {
		claim.ArxivID = s.CitationData["arxiv_id"]
	}
	return claim
}
