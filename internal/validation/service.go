// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validation orchestrates the five-layer citation pipeline:
// format, registry existence, content verification, cross-document
// conflicts, and red flags. Layers run in order; an invalid format
// skips the registry and content layers before any network access.
package validation

import (
	"context"
	"fmt"

	"github.com/pdiddy/citation-verifier/internal/format"
	"github.com/pdiddy/citation-verifier/internal/redflags"
	"github.com/pdiddy/citation-verifier/internal/verify"
	"github.com/pdiddy/citation-verifier/pkg/types"
)

// RegistryChecker confirms identifiers against their registries.
type RegistryChecker interface {
	CheckDOI(ctx context.Context, doi string) (types.ValidationResult, *types.SourceMetadata)
	CheckISBN(ctx context.Context, isbn string) (types.ValidationResult, *types.SourceMetadata)
	CheckArxiv(ctx context.Context, id string) (types.ValidationResult, *types.SourceMetadata)
}

// ConflictChecker reports other documents citing the same identifier.
type ConflictChecker interface {
	CheckForConflicts(ctx context.Context, doi, isbn, currentDocumentID string) (types.ValidationResult, []types.ConflictingInterpretation, error)
}

// Service runs the validation pipeline. A nil registry or conflict
// checker disables the corresponding layer.
type Service struct {
	registry  RegistryChecker
	conflicts ConflictChecker
	cfg       types.ValidationConfig
}

func NewService(registry RegistryChecker, conflicts ConflictChecker, cfg types.ValidationConfig) *Service {
	return &Service{registry: registry, conflicts: conflicts, cfg: cfg}
}

// ValidateCitation runs every layer against one claim and aggregates
// the verdict. documentID scopes the cross-document conflict check so
// the claim's own document is not counted against itself.
func (s *Service) ValidateCitation(ctx context.Context, claim types.CitationClaim, documentID string) types.FullValidationResult {
	result := types.FullValidationResult{}

	result.FormatResults = s.checkFormat(claim)

	// An invalid format skips the network and content layers; nothing
	// there can trust the identifier. Cross-document and red-flag
	// checks still run on whatever local data exists.
	if !anyInvalid(result.FormatResults) {
		s.checkExistence(ctx, claim, &result)
		s.requestContentChecks(claim, &result)
	}
	s.checkCrossDocument(ctx, claim, documentID, &result)
	s.checkRedFlags(claim, &result)

	aggregate(&result)
	return result
}

func (s *Service) checkFormat(claim types.CitationClaim) []types.ValidationResult {
	var results []types.ValidationResult

	if claim.DOI != "" {
		results = append(results, format.ValidateDOI(claim.DOI))
	}
	if claim.ISBN != "" {
		results = append(results, format.ValidateISBN(claim.ISBN))
	}
	if claim.ArxivID != "" {
		results = append(results, format.ValidateArxiv(claim.ArxivID))
	}

	results = append(results, format.ValidateRequiredFields(claim.SourceType, claim.Data)...)

	if claim.Year != 0 {
		results = append(results, format.ValidateYear(claim.Year))
	}

	return results
}

// checkExistence confirms the highest-precedence identifier against
// its registry, using the normalized form layer 1 produced.
func (s *Service) checkExistence(ctx context.Context, claim types.CitationClaim, result *types.FullValidationResult) {
	if !s.cfg.EnableAPIChecks || s.registry == nil {
		return
	}

	kind, value := claim.PrimaryIdentifier()
	if kind == "" {
		return
	}
	if n := normalizedIdentifier(result.FormatResults, kind); n != "" {
		value = n
	}

	var res types.ValidationResult
	var md *types.SourceMetadata
	switch kind {
	case "doi":
		res, md = s.registry.CheckDOI(ctx, value)
	case "isbn":
		res, md = s.registry.CheckISBN(ctx, value)
	case "arxiv":
		res, md = s.registry.CheckArxiv(ctx, value)
	}

	result.ExistenceResult = &res
	result.Metadata = md
}

// requestContentChecks enqueues human verification for questions the
// registries cannot settle. It runs only when layer 2 retrieved
// metadata; requests are returned to the caller, never resolved inline.
func (s *Service) requestContentChecks(claim types.CitationClaim, result *types.FullValidationResult) {
	md := result.Metadata
	if md == nil {
		return
	}

	if text := claim.Data["claim_text"]; text != "" {
		result.VerificationRequests = append(result.VerificationRequests,
			verify.NewSourceSupportsClaimRequest(claim.SourceID, claim.Data["claim_id"], text, claim.Data["title"]))
	}

	if redflags.CheckAuthorMismatch(claim, md) != nil {
		result.VerificationRequests = append(result.VerificationRequests,
			verify.NewAuthorMismatchRequest(claim.SourceID, claim.Authors, md.Authors))
	}
	if claim.Year != 0 && md.Year != 0 && claim.Year != md.Year {
		result.VerificationRequests = append(result.VerificationRequests,
			verify.NewYearMismatchRequest(claim.SourceID, claim.Year, md.Year))
	}
}

// checkCrossDocument runs layer 4 when the claim carries a DOI or
// ISBN. A failing store degrades to a warning rather than blocking the
// citation.
func (s *Service) checkCrossDocument(ctx context.Context, claim types.CitationClaim, documentID string, result *types.FullValidationResult) {
	if s.conflicts == nil || (claim.DOI == "" && claim.ISBN == "") {
		return
	}

	res, conflicts, err := s.conflicts.CheckForConflicts(ctx, claim.DOI, claim.ISBN, documentID)
	if err != nil {
		result.CrossProjectResult = &types.ValidationResult{
			Status:  types.StatusWarning,
			Layer:   types.LayerCrossProject,
			Message: fmt.Sprintf("cross-document check unavailable: %v", err),
		}
		return
	}

	result.CrossProjectResult = &res
	result.Conflicts = conflicts
}

func (s *Service) checkRedFlags(claim types.CitationClaim, result *types.FullValidationResult) {
	confirmedMissing := result.ExistenceResult != nil &&
		result.ExistenceResult.Status == types.StatusInvalid
	result.RedFlags = redflags.Aggregate(claim, result.Metadata, confirmedMissing)
}

// aggregate derives the overall verdict: invalid iff any format result
// is invalid or any flag blocks export; else warning iff anything
// warned; else valid.
func aggregate(result *types.FullValidationResult) {
	var critical string
	warnings := 0

	for _, r := range result.FormatResults {
		switch r.Status {
		case types.StatusInvalid:
			if critical == "" {
				critical = r.Message
			}
		case types.StatusWarning:
			warnings++
		}
	}

	for _, r := range []*types.ValidationResult{result.ExistenceResult, result.CrossProjectResult} {
		if r != nil && r.Status == types.StatusWarning {
			warnings++
		}
	}

	for _, f := range result.RedFlags {
		if f.BlocksExport {
			if critical == "" {
				critical = f.Message
			}
		} else {
			warnings++
		}
	}

	// Pending verification requests carry no severity; a WARNING for a
	// rejected check arrives later through verify.Evaluate.

	switch {
	case critical != "":
		result.OverallStatus = types.StatusInvalid
		result.BlocksExport = true
		result.Summary = "validation failed: " + critical
	case warnings > 0:
		result.OverallStatus = types.StatusWarning
		result.Summary = fmt.Sprintf("passed with %d warning(s)", warnings)
	default:
		result.OverallStatus = types.StatusValid
		result.Summary = "all checks passed"
	}
}

func anyInvalid(results []types.ValidationResult) bool {
	for _, r := range results {
		if r.Status == types.StatusInvalid {
			return true
		}
	}
	return false
}

// normalizedIdentifier pulls the cleaned identifier layer 1 stored for
// the given field, if it validated.
func normalizedIdentifier(results []types.ValidationResult, field string) string {
	name := field
	if field == "arxiv" {
		name = "arxiv_id"
	}
	for _, r := range results {
		if r.Field == name && r.Status == types.StatusValid {
			if n, ok := r.Details["normalized"].(string); ok {
				return n
			}
		}
	}
	return ""
}
