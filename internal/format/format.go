// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format performs deterministic, local structural validation of
// citation claims: identifier grammars, checksum arithmetic, required
// fields, and year plausibility. No network, no side effects; every
// function returns a result value and none returns an error.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/citation-verifier/pkg/types"
)

// doiPattern matches the canonical DOI grammar after prefix stripping:
// "10." + registrant code of at least four digits, optional dot
// segments, "/", non-whitespace suffix.
var doiPattern = regexp.MustCompile(`^10\.\d{4,}(\.\d+)*/\S+$`)

// isbn10Pattern matches the ISBN-10 shape: nine digits plus a digit or
// X check character.
var isbn10Pattern = regexp.MustCompile(`^\d{9}[\dXx]$`)

// arXiv identifier grammars: new format "2301.07041" / "2301.07041v2",
// old format "hep-th/9901001" / "hep-th/9901001v1".
var (
	arxivNewPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	arxivOldPattern = regexp.MustCompile(`^[a-z\-]+/\d{7}(v\d+)?$`)
)

// doiPrefixes are stripped before matching the DOI grammar.
var doiPrefixes = []string{"https://doi.org/", "http://doi.org/", "doi:"}

// requiredFields maps each source type to the claim-data fields it must carry.
var requiredFields = map[types.SourceType][]string{
	types.SourceJournal:    {"title", "authors", "journal", "year"},
	types.SourceBook:       {"title", "authors", "year"},
	types.SourceConference: {"title", "authors", "conference", "year"},
	types.SourceWebpage:    {"title", "url", "access_date"},
	types.SourceThesis:     {"title", "author", "institution", "year"},
}

// minPlausibleYear is the earliest acceptable publication year; printed
// sources predating movable type are treated as data errors.
const minPlausibleYear = 1450

// nowFunc supplies the current time. Tests substitute a fixed clock.
var nowFunc = time.Now

// ValidateDOI strips known URL and scheme prefixes and matches the
// remainder against the DOI grammar. The normalized form is returned in
// details on success; the cleaned input on failure.
func ValidateDOI(doi string) types.ValidationResult {
	cleaned := strings.TrimSpace(doi)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(cleaned, p) {
			cleaned = cleaned[len(p):]
			break
		}
	}

	if cleaned == "" {
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerFormat,
			Message: "DOI is empty",
			Field:   "doi",
		}
	}

	if !doiPattern.MatchString(cleaned) {
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerFormat,
			Message: "DOI does not match the expected format",
			Field:   "doi",
			Details: map[string]any{"cleaned": cleaned},
		}
	}

	return types.ValidationResult{
		Status:  types.StatusValid,
		Layer:   types.LayerFormat,
		Message: "DOI format is valid",
		Field:   "doi",
		Details: map[string]any{"normalized": cleaned},
	}
}

// ValidateISBN strips hyphens and spaces and validates either an
// ISBN-10 (mod-11 weighted checksum, X as 10) or an ISBN-13 (978/979
// prefix, alternating 1,3 mod-10 checksum). Any other length is invalid.
func ValidateISBN(isbn string) types.ValidationResult {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn))

	if cleaned == "" {
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerFormat,
			Message: "ISBN is empty",
			Field:   "isbn",
		}
	}

	switch len(cleaned) {
	case 10:
		if !isbn10Pattern.MatchString(cleaned) {
			return invalidISBN(cleaned, "ISBN-10 contains invalid characters")
		}
		if !isbn10ChecksumValid(cleaned) {
			return invalidISBN(cleaned, "ISBN-10 checksum failed")
		}
	case 13:
		if !isDigits(cleaned) {
			return invalidISBN(cleaned, "ISBN-13 must be digits only")
		}
		if !strings.HasPrefix(cleaned, "978") && !strings.HasPrefix(cleaned, "979") {
			return invalidISBN(cleaned, "ISBN-13 must start with 978 or 979")
		}
		if !isbn13ChecksumValid(cleaned) {
			return invalidISBN(cleaned, "ISBN-13 checksum failed")
		}
	default:
		return invalidISBN(cleaned, fmt.Sprintf("ISBN must be 10 or 13 digits, got %d", len(cleaned)))
	}

	return types.ValidationResult{
		Status:  types.StatusValid,
		Layer:   types.LayerFormat,
		Message: "ISBN is valid",
		Field:   "isbn",
		Details: map[string]any{"normalized": cleaned},
	}
}

func invalidISBN(cleaned, msg string) types.ValidationResult {
	return types.ValidationResult{
		Status:  types.StatusInvalid,
		Layer:   types.LayerFormat,
		Message: msg,
		Field:   "isbn",
		Details: map[string]any{"cleaned": cleaned},
	}
}

// isbn10ChecksumValid computes the mod-11 weighted sum: digit i carries
// weight 10-i, with X counting as 10 in the check position.
func isbn10ChecksumValid(isbn string) bool {
	sum := 0
	for i, r := range isbn {
		var v int
		switch {
		case r >= '0' && r <= '9':
			v = int(r - '0')
		case r == 'X' || r == 'x':
			if i != 9 {
				return false
			}
			v = 10
		default:
			return false
		}
		sum += v * (10 - i)
	}
	return sum%11 == 0
}

// isbn13ChecksumValid computes the alternating 1,3-weighted mod-10 sum
// over all thirteen digits, check digit included.
func isbn13ChecksumValid(isbn string) bool {
	sum := 0
	for i, r := range isbn {
		v := int(r - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ValidateArxiv strips the optional "arXiv:"/"arxiv:" prefix and
// matches either the new (YYMM.NNNNN) or old (archive/NNNNNNN) format,
// each with an optional version suffix.
func ValidateArxiv(id string) types.ValidationResult {
	cleaned := strings.TrimSpace(id)
	cleaned = strings.TrimPrefix(cleaned, "arXiv:")
	cleaned = strings.TrimPrefix(cleaned, "arxiv:")

	if cleaned == "" {
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerFormat,
			Message: "arXiv ID is empty",
			Field:   "arxiv_id",
		}
	}

	if !arxivNewPattern.MatchString(cleaned) && !arxivOldPattern.MatchString(cleaned) {
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerFormat,
			Message: "arXiv ID does not match the expected format",
			Field:   "arxiv_id",
			Details: map[string]any{"cleaned": cleaned},
		}
	}

	return types.ValidationResult{
		Status:  types.StatusValid,
		Layer:   types.LayerFormat,
		Message: "arXiv ID format is valid",
		Field:   "arxiv_id",
		Details: map[string]any{"normalized": cleaned},
	}
}

// ValidateRequiredFields checks the claim data against the fixed
// required-field set for the source type, emitting one result per field.
func ValidateRequiredFields(sourceType types.SourceType, data map[string]string) []types.ValidationResult {
	fields, ok := requiredFields[sourceType]
	if !ok {
		return []types.ValidationResult{{
			Status:  types.StatusWarning,
			Layer:   types.LayerFormat,
			Message: fmt.Sprintf("unknown source type %q: required fields not checked", sourceType),
			Field:   "source_type",
		}}
	}

	results := make([]types.ValidationResult, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(data[f]) == "" {
			results = append(results, types.ValidationResult{
				Status:  types.StatusInvalid,
				Layer:   types.LayerFormat,
				Message: fmt.Sprintf("required field %q is missing", f),
				Field:   f,
			})
			continue
		}
		results = append(results, types.ValidationResult{
			Status:  types.StatusValid,
			Layer:   types.LayerFormat,
			Message: fmt.Sprintf("required field %q is present", f),
			Field:   f,
		})
	}
	return results
}

// ValidateYear rejects years before movable-type printing and warns on
// years more than one year in the future (forthcoming works).
func ValidateYear(year int) types.ValidationResult {
	current := nowFunc().Year()

	switch {
	case year < minPlausibleYear:
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerFormat,
			Message: fmt.Sprintf("year %d predates plausible publication", year),
			Field:   "year",
			Details: map[string]any{"year": year},
		}
	case year > current+1:
		return types.ValidationResult{
			Status:  types.StatusWarning,
			Layer:   types.LayerFormat,
			Message: fmt.Sprintf("year %d is in the future", year),
			Field:   "year",
			Details: map[string]any{"year": year, "current_year": current},
		}
	default:
		return types.ValidationResult{
			Status:  types.StatusValid,
			Layer:   types.LayerFormat,
			Message: "year is plausible",
			Field:   "year",
		}
	}
}
