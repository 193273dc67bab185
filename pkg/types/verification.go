// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// VerificationCheckType names the situation a human is asked to settle.
type VerificationCheckType string

const (
	// CheckSourceSupportsClaim asks whether the source actually supports
	// the claim it is cited for.
	CheckSourceSupportsClaim VerificationCheckType = "source_supports_claim"

	// CheckAuthorMatch asks whether cited and registered authors refer
	// to the same people.
	CheckAuthorMatch VerificationCheckType = "author_match"

	// CheckYearMatch asks whether the cited year is defensible given
	// the registered year.
	CheckYearMatch VerificationCheckType = "year_match"
)

// ContentVerificationRequest is a pending human check. The pipeline
// returns requests and expects responses through a separate call; the
// wait never blocks orchestration.
type ContentVerificationRequest struct {
	// ID uniquely identifies the request.
	ID string `json:"id" yaml:"id"`

	// SourceID references the source record under review.
	SourceID string `json:"source_id" yaml:"source_id"`

	// ClaimID references the claim the source is cited for, when the
	// check concerns a specific claim.
	ClaimID string `json:"claim_id,omitempty" yaml:"claim_id,omitempty"`

	// CheckType names the situation being verified.
	CheckType VerificationCheckType `json:"check_type" yaml:"check_type"`

	// Prompt is the question shown to the human verifier.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Context carries supporting evidence for the prompt (cited vs
	// retrieved values).
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
}

// VerificationResponse is the human verdict for one request.
type VerificationResponse struct {
	// RequestID references the request being answered.
	RequestID string `json:"request_id" yaml:"request_id"`

	// Verified is the human's boolean verdict.
	Verified bool `json:"verified" yaml:"verified"`

	// VerifiedBy identifies the human, for audit.
	VerifiedBy string `json:"verified_by,omitempty" yaml:"verified_by,omitempty"`

	// Notes holds free-form reviewer remarks.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
