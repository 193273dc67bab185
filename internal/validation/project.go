// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/citation-verifier/internal/redflags"
	"github.com/pdiddy/citation-verifier/pkg/types"
)

// defaultMaxConcurrent bounds the per-document fan-out when the config
// leaves MaxConcurrent unset.
const defaultMaxConcurrent = 4

// ProjectStore loads a document and its citation sources.
type ProjectStore interface {
	GetDocument(ctx context.Context, id string) (types.Document, error)
	ListSources(ctx context.Context, documentID string) ([]types.Source, error)
}

// ProjectReport is the document-wide validation outcome: one full
// result per source plus the document-level findings.
type ProjectReport struct {
	DocumentID    string    `json:"document_id" yaml:"document_id"`
	DocumentTitle string    `json:"document_title" yaml:"document_title"`
	AuthorName    string    `json:"author_name" yaml:"author_name"`
	GeneratedAt   time.Time `json:"generated_at" yaml:"generated_at"`

	// Results maps source ID to that source's full pipeline outcome.
	Results map[string]types.FullValidationResult `json:"results" yaml:"results"`

	// DocumentFlags holds findings judged across the whole document
	// rather than per source (self-citation ratio).
	DocumentFlags []types.RedFlag `json:"document_flags,omitempty" yaml:"document_flags,omitempty"`

	TotalSources int  `json:"total_sources" yaml:"total_sources"`
	ValidCount   int  `json:"valid_count" yaml:"valid_count"`
	WarningCount int  `json:"warning_count" yaml:"warning_count"`
	InvalidCount int  `json:"invalid_count" yaml:"invalid_count"`
	BlocksExport bool `json:"blocks_export" yaml:"blocks_export"`
}

// ValidateProject validates every non-deleted source of one document.
// Sources fan out across a bounded worker pool; results land in a map
// keyed by source ID. Self-citation is judged once across the whole
// document and reported as a document-level flag.
func (s *Service) ValidateProject(ctx context.Context, store ProjectStore, documentID string) (*ProjectReport, error) {
	doc, err := store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	sources, err := store.ListSources(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}

	report := &ProjectReport{
		DocumentID:    doc.ID,
		DocumentTitle: doc.Title,
		AuthorName:    doc.AuthorName,
		GeneratedAt:   time.Now().UTC(),
		Results:       make(map[string]types.FullValidationResult, len(sources)),
		TotalSources:  len(sources),
	}

	maxConcurrent := s.cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	claims := make([]types.CitationClaim, len(sources))
	for i, src := range sources {
		claims[i] = src.Claim()
	}

	for _, claim := range claims {
		claim := claim
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.ValidateCitation(gctx, claim, documentID)
			mu.Lock()
			report.Results[claim.SourceID] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validating sources: %w", err)
	}

	if flag := redflags.CheckSelfCitationRatio(doc.AuthorName, claims); flag != nil {
		report.DocumentFlags = append(report.DocumentFlags, *flag)
	}

	for _, res := range report.Results {
		switch res.OverallStatus {
		case types.StatusInvalid:
			report.InvalidCount++
		case types.StatusWarning:
			report.WarningCount++
		default:
			report.ValidCount++
		}
		if res.BlocksExport {
			report.BlocksExport = true
		}
	}

	return report, nil
}
