// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the citation
// verification pipeline: claims, registry metadata, per-check results,
// red flags, cross-project conflicts, and stage configuration.
package types

// Status is the outcome of a single validation check.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusWarning Status = "warning"
)

// Pipeline layers, in execution order. Each ValidationResult records
// the layer that produced it.
const (
	LayerFormat       = 1
	LayerExistence    = 2
	LayerContent      = 3
	LayerCrossProject = 4
	LayerRedFlags     = 5
)

// ValidationResult is the outcome of one check. Every check returns a
// result value; expected failure modes are statuses, never errors.
type ValidationResult struct {
	// Status is the check outcome.
	Status Status `json:"status" yaml:"status"`

	// Layer is the pipeline layer (1..5) that produced the result.
	Layer int `json:"layer" yaml:"layer"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message" yaml:"message"`

	// Field names the claim field the check applies to, when one does.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Details carries check-specific evidence (normalized forms, HTTP
	// status codes, counts).
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// FullValidationResult aggregates every layer's output for one citation.
// It is created fresh per validation call; the pipeline persists no
// verdict state.
type FullValidationResult struct {
	// FormatResults holds the layer-1 results (identifier grammars,
	// required fields, year plausibility).
	FormatResults []ValidationResult `json:"format_results" yaml:"format_results"`

	// ExistenceResult is the layer-2 registry outcome, nil when layer 2
	// did not run.
	ExistenceResult *ValidationResult `json:"existence_result,omitempty" yaml:"existence_result,omitempty"`

	// Metadata is the registry-retrieved record, nil unless layer 2
	// found the work.
	Metadata *SourceMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// VerificationRequests lists pending human checks enqueued by
	// layer 3. They are returned, not resolved, by the pipeline.
	VerificationRequests []ContentVerificationRequest `json:"verification_requests,omitempty" yaml:"verification_requests,omitempty"`

	// CrossProjectResult is the layer-4 outcome, nil when the claim
	// carries no DOI or ISBN to look up.
	CrossProjectResult *ValidationResult `json:"cross_project_result,omitempty" yaml:"cross_project_result,omitempty"`

	// Conflicts lists other documents' divergent uses of the same
	// identifier.
	Conflicts []ConflictingInterpretation `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`

	// RedFlags holds the layer-5 integrity findings.
	RedFlags []RedFlag `json:"red_flags,omitempty" yaml:"red_flags,omitempty"`

	// OverallStatus is invalid iff any format result is invalid or any
	// flag blocks export; else warning iff anything warned; else valid.
	OverallStatus Status `json:"overall_status" yaml:"overall_status"`

	// BlocksExport mirrors OverallStatus == invalid.
	BlocksExport bool `json:"blocks_export" yaml:"blocks_export"`

	// Summary is the headline message, chosen critical > warnings >
	// all-clear.
	Summary string `json:"summary" yaml:"summary"`
}
