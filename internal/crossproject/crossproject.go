// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossproject detects when unrelated documents cite the same
// identifier with divergent interpretations. It consumes a usage-store
// collaborator and produces read-only evidence; conflicts warn, never
// block.
package crossproject

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

// snippetLength bounds the interpretation excerpt taken from a usage's
// content.
const snippetLength = 500

// noContentSentinel stands in when a usage has neither content nor a
// citation title.
const noContentSentinel = "(no content)"

// SourceUsage is one record of an identifier being cited somewhere,
// joined to its owning document and author. Soft-deleted records never
// reach this type.
type SourceUsage struct {
	SourceID      string
	DocumentID    string
	DocumentTitle string
	AuthorName    string
	Content       string
	CitationTitle string
}

// UsageStore finds every non-deleted usage of an identifier across all
// documents.
type UsageStore interface {
	FindUsages(ctx context.Context, doi, isbn string) ([]SourceUsage, error)
}

// Checker partitions shared-identifier usages into the current document
// vs everyone else.
type Checker struct {
	store UsageStore
}

func NewChecker(store UsageStore) *Checker {
	return &Checker{store: store}
}

// CheckForConflicts reports how other documents interpret the given
// identifier. Zero other usages yield VALID; any other usage yields a
// WARNING with the count, plus the conflict list as evidence. Calling
// with neither a DOI nor an ISBN is contract misuse and returns an
// error; store failures propagate for the caller to degrade.
func (c *Checker) CheckForConflicts(ctx context.Context, doi, isbn, currentDocumentID string) (types.ValidationResult, []types.ConflictingInterpretation, error) {
	if doi == "" && isbn == "" {
		return types.ValidationResult{}, nil, fmt.Errorf("cross-project check requires a DOI or ISBN")
	}

	usages, err := c.store.FindUsages(ctx, doi, isbn)
	if err != nil {
		return types.ValidationResult{}, nil, fmt.Errorf("finding identifier usages: %w", err)
	}

	var conflicts []types.ConflictingInterpretation
	for _, u := range usages {
		if u.DocumentID == currentDocumentID {
			continue
		}
		conflicts = append(conflicts, types.ConflictingInterpretation{
			SourceID:       u.SourceID,
			DocumentID:     u.DocumentID,
			DocumentTitle:  u.DocumentTitle,
			AuthorName:     u.AuthorName,
			Interpretation: interpretation(u),
		})
	}

	if len(conflicts) > 0 {
		return types.ValidationResult{
			Status:  types.StatusWarning,
			Layer:   types.LayerCrossProject,
			Message: fmt.Sprintf("%d other document(s) cite this identifier", len(conflicts)),
			Details: map[string]any{"conflict_count": len(conflicts)},
		}, conflicts, nil
	}

	return types.ValidationResult{
		Status:  types.StatusValid,
		Layer:   types.LayerCrossProject,
		Message: "no other documents cite this identifier",
	}, nil, nil
}

// interpretation derives the snippet for one usage: content excerpt,
// then citation title, then the sentinel.
func interpretation(u SourceUsage) string {
	content := strings.TrimSpace(u.Content)
	if content != "" {
		runes := []rune(content)
		if len(runes) > snippetLength {
			return string(runes[:snippetLength])
		}
		return content
	}
	if title := strings.TrimSpace(u.CitationTitle); title != "" {
		return title
	}
	return noContentSentinel
}
