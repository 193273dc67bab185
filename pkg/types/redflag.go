// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RedFlagType names a rule-detected integrity risk.
type RedFlagType string

const (
	// FlagNonexistentSource marks an identifier the registry could not find.
	FlagNonexistentSource RedFlagType = "nonexistent_doi"

	// FlagDateMismatch marks a cited year more than the allowed delta
	// away from the registered year.
	FlagDateMismatch RedFlagType = "date_mismatch"

	// FlagAuthorMismatch marks claimed and registered author lists with
	// no surname in common.
	FlagAuthorMismatch RedFlagType = "author_mismatch"

	// FlagSuspiciousJournal marks a journal name matching the
	// predatory-publisher denylist.
	FlagSuspiciousJournal RedFlagType = "suspicious_journal"

	// FlagHighSelfCitation marks a document citing its own author above
	// the allowed ratio.
	FlagHighSelfCitation RedFlagType = "high_self_citation"
)

// Severity grades a red flag.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// RedFlag is an integrity finding. Severity and blocking behavior are
// data on the flag, not errors.
type RedFlag struct {
	// Type names the violated rule.
	Type RedFlagType `json:"type" yaml:"type"`

	// SourceID references the flagged source record. Empty for
	// document-level flags (self-citation).
	SourceID string `json:"source_id,omitempty" yaml:"source_id,omitempty"`

	// Severity is high or medium.
	Severity Severity `json:"severity" yaml:"severity"`

	// Message describes the finding.
	Message string `json:"message" yaml:"message"`

	// BlocksExport is true when the finding must prevent export until
	// resolved.
	BlocksExport bool `json:"blocks_export" yaml:"blocks_export"`

	// Details carries rule-specific evidence (years, deltas, ratios).
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// ConflictingInterpretation is read-only evidence that another document
// cites the same identifier with a different reading.
type ConflictingInterpretation struct {
	// SourceID references the other document's source record.
	SourceID string `json:"source_id" yaml:"source_id"`

	// DocumentID and DocumentTitle identify the owning document.
	DocumentID    string `json:"document_id" yaml:"document_id"`
	DocumentTitle string `json:"document_title,omitempty" yaml:"document_title,omitempty"`

	// AuthorName is the owning document's author.
	AuthorName string `json:"author_name,omitempty" yaml:"author_name,omitempty"`

	// Interpretation is a short snippet of how that document uses the
	// source.
	Interpretation string `json:"interpretation" yaml:"interpretation"`
}
