// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package redflags evaluates integrity rules over claimed and
// registry-retrieved citation data. Findings carry severity and
// export-blocking behavior as data; nothing here is an error.
package redflags

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

// maxYearDelta is the largest tolerated gap between cited and
// registered publication years before the citation blocks export.
const maxYearDelta = 5

// selfCitationThreshold is the highest tolerated share of a document's
// sources authored by the document's own author.
const selfCitationThreshold = 0.30

// suspiciousJournalMarkers is the denylist matched as substrings
// against claimed journal names (lower-cased).
var suspiciousJournalMarkers = []string{
	"predatory",
	"pay to publish",
	"pay-to-publish",
	"guaranteed acceptance",
	"rapid publication journal",
	"world journal of advanced",
	"international journal of current",
	"global journals inc",
}

// CheckExistenceFailure flags an identifier the registry confirmed
// absent. confirmedMissing must be true only for a definitive
// not-found, never for network degradation.
func CheckExistenceFailure(claim types.CitationClaim, confirmedMissing bool) *types.RedFlag {
	kind, value := claim.PrimaryIdentifier()
	if kind == "" || !confirmedMissing {
		return nil
	}
	return &types.RedFlag{
		Type:         types.FlagNonexistentSource,
		SourceID:     claim.SourceID,
		Severity:     types.SeverityHigh,
		Message:      fmt.Sprintf("%s %q not found in its registry", kind, value),
		BlocksExport: true,
		Details:      map[string]any{"identifier_kind": kind, "identifier": value},
	}
}

// CheckDateMismatch flags cited years more than maxYearDelta away from
// the registered year. Requires both years.
func CheckDateMismatch(claim types.CitationClaim, md *types.SourceMetadata) *types.RedFlag {
	if md == nil || claim.Year == 0 || md.Year == 0 {
		return nil
	}
	delta := int(math.Abs(float64(claim.Year - md.Year)))
	if delta <= maxYearDelta {
		return nil
	}
	return &types.RedFlag{
		Type:         types.FlagDateMismatch,
		SourceID:     claim.SourceID,
		Severity:     types.SeverityHigh,
		Message:      fmt.Sprintf("cited year %d differs from registered year %d by %d years", claim.Year, md.Year, delta),
		BlocksExport: true,
		Details: map[string]any{
			"cited_year":     claim.Year,
			"retrieved_year": md.Year,
			"difference":     delta,
		},
	}
}

// CheckAuthorMismatch flags author lists with no surname in common.
// Requires both lists.
func CheckAuthorMismatch(claim types.CitationClaim, md *types.SourceMetadata) *types.RedFlag {
	if md == nil || len(claim.Authors) == 0 || len(md.Authors) == 0 {
		return nil
	}

	cited := surnameSet(claim.Authors)
	retrieved := surnameSet(md.Authors)
	for s := range cited {
		if retrieved[s] {
			return nil
		}
	}

	return &types.RedFlag{
		Type:         types.FlagAuthorMismatch,
		SourceID:     claim.SourceID,
		Severity:     types.SeverityHigh,
		Message:      "cited authors share no surname with the registered authors",
		BlocksExport: true,
		Details: map[string]any{
			"cited_authors":     claim.Authors,
			"retrieved_authors": md.Authors,
		},
	}
}

// CheckSuspiciousJournal flags claimed journal names matching the
// predatory-publisher denylist.
func CheckSuspiciousJournal(claim types.CitationClaim) *types.RedFlag {
	journal := strings.ToLower(strings.TrimSpace(claim.Data["journal"]))
	if journal == "" {
		return nil
	}
	for _, marker := range suspiciousJournalMarkers {
		if strings.Contains(journal, marker) {
			return &types.RedFlag{
				Type:         types.FlagSuspiciousJournal,
				SourceID:     claim.SourceID,
				Severity:     types.SeverityMedium,
				Message:      fmt.Sprintf("journal name matches suspicious pattern %q", marker),
				BlocksExport: false,
				Details:      map[string]any{"journal": claim.Data["journal"], "pattern": marker},
			}
		}
	}
	return nil
}

// CheckSelfCitationRatio flags a document whose author appears in the
// author lists of more than selfCitationThreshold of its sources. This
// is a document-level rule; the orchestrator calls it once per
// project, not per source.
func CheckSelfCitationRatio(documentAuthor string, claims []types.CitationClaim) *types.RedFlag {
	author := surname(documentAuthor)
	if author == "" || len(claims) == 0 {
		return nil
	}

	self := 0
	for _, c := range claims {
		if surnameSet(c.Authors)[author] {
			self++
		}
	}

	ratio := float64(self) / float64(len(claims))
	if ratio <= selfCitationThreshold {
		return nil
	}

	return &types.RedFlag{
		Type:         types.FlagHighSelfCitation,
		Severity:     types.SeverityMedium,
		Message:      fmt.Sprintf("%.0f%% of sources cite the document author", ratio*100),
		BlocksExport: false,
		Details: map[string]any{
			"self_citations": self,
			"total_sources":  len(claims),
			"ratio":          ratio,
		},
	}
}

// Aggregate runs the per-source rules (existence, date, author,
// suspicious journal) and returns the findings. Self-citation is a
// document-level call made separately.
func Aggregate(claim types.CitationClaim, md *types.SourceMetadata, confirmedMissing bool) []types.RedFlag {
	var flags []types.RedFlag
	for _, f := range []*types.RedFlag{
		CheckExistenceFailure(claim, confirmedMissing),
		CheckDateMismatch(claim, md),
		CheckAuthorMismatch(claim, md),
		CheckSuspiciousJournal(claim),
	} {
		if f != nil {
			flags = append(flags, *f)
		}
	}
	return flags
}

// surname extracts the comparison token for one name: the part before
// a comma when present ("Vaswani, Ashish"), otherwise the last
// whitespace-delimited token ("Ashish Vaswani"), lower-cased.
func surname(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if i := strings.Index(name, ","); i >= 0 {
		return strings.ToLower(strings.TrimSpace(name[:i]))
	}
	fields := strings.Fields(name)
	return strings.ToLower(fields[len(fields)-1])
}

func surnameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if s := surname(n); s != "" {
			set[s] = true
		}
	}
	return set
}
