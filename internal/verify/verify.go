// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify shapes manual verification requests for mismatches
// that registries cannot settle, and interprets the human responses.
// It never calls external services: requests go out, responses come
// back through a separate call, and the wait in between belongs to the
// caller.
package verify

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

// NewSourceSupportsClaimRequest asks whether the cited source actually
// supports the claim it is attached to.
func NewSourceSupportsClaimRequest(sourceID, claimID, claimText, sourceTitle string) types.ContentVerificationRequest {
	return types.ContentVerificationRequest{
		ID:        uuid.NewString(),
		SourceID:  sourceID,
		ClaimID:   claimID,
		CheckType: types.CheckSourceSupportsClaim,
		Prompt: fmt.Sprintf(
			"Does the source %q support the claim: %q? Review the source and confirm or reject.",
			sourceTitle, claimText),
		Context: map[string]any{
			"claim_text":   claimText,
			"source_title": sourceTitle,
		},
	}
}

// NewAuthorMismatchRequest asks whether cited and registered author
// lists refer to the same people.
func NewAuthorMismatchRequest(sourceID string, cited, retrieved []string) types.ContentVerificationRequest {
	return types.ContentVerificationRequest{
		ID:        uuid.NewString(),
		SourceID:  sourceID,
		CheckType: types.CheckAuthorMatch,
		Prompt: fmt.Sprintf(
			"The citation lists authors [%s] but the registry lists [%s]. Do these refer to the same work?",
			strings.Join(cited, "; "), strings.Join(retrieved, "; ")),
		Context: map[string]any{
			"cited_authors":     cited,
			"retrieved_authors": retrieved,
		},
	}
}

// NewYearMismatchRequest asks whether the cited year is defensible
// (edition differences, preprint vs print) given the registered year.
func NewYearMismatchRequest(sourceID string, cited, retrieved int) types.ContentVerificationRequest {
	return types.ContentVerificationRequest{
		ID:        uuid.NewString(),
		SourceID:  sourceID,
		CheckType: types.CheckYearMatch,
		Prompt: fmt.Sprintf(
			"The citation claims year %d but the registry records %d. Is the cited year correct for the edition used?",
			cited, retrieved),
		Context: map[string]any{
			"cited_year":     cited,
			"retrieved_year": retrieved,
		},
	}
}

// Evaluate maps a human verdict to a layer-3 result: VALID when
// verified, WARNING otherwise. The verifier's identity and notes are
// carried in details for audit.
func Evaluate(resp types.VerificationResponse) types.ValidationResult {
	details := map[string]any{
		"request_id": resp.RequestID,
	}
	if resp.VerifiedBy != "" {
		details["verified_by"] = resp.VerifiedBy
	}
	if resp.Notes != "" {
		details["notes"] = resp.Notes
	}

	if resp.Verified {
		return types.ValidationResult{
			Status:  types.StatusValid,
			Layer:   types.LayerContent,
			Message: "content verified by reviewer",
			Details: details,
		}
	}
	return types.ValidationResult{
		Status:  types.StatusWarning,
		Layer:   types.LayerContent,
		Message: "reviewer rejected the content match",
		Details: details,
	}
}
