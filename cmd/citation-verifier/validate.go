// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-verifier/internal/crossproject"
	"github.com/pdiddy/citation-verifier/internal/registry"
	"github.com/pdiddy/citation-verifier/internal/store"
	"github.com/pdiddy/citation-verifier/internal/validation"
	"github.com/pdiddy/citation-verifier/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate one citation through every pipeline layer",
	Long: `Validate runs a single citation through format checks, registry
existence lookup, content verification, cross-document conflict
detection, and red-flag rules. The citation is described with flags;
--offline skips the registry lookup.

The command exits non-zero when the citation would block export.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	claim, err := claimFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg.Validation.EnableAPIChecks = false
	}

	var reg validation.RegistryChecker
	if cfg.Validation.EnableAPIChecks {
		reg = registry.NewChecker(cfg.Registry)
	}

	var conflicts validation.ConflictChecker
	st, err := store.NewStore(cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: store unavailable, skipping cross-document check: %v\n", err)
	} else {
		defer st.Close()
		conflicts = crossproject.NewChecker(st)
	}

	documentID, _ := cmd.Flags().GetString("document")
	svc := validation.NewService(reg, conflicts, cfg.Validation)
	res := svc.ValidateCitation(cmd.Context(), claim, documentID)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printResult(os.Stdout, res)
	}

	if res.BlocksExport {
		return fmt.Errorf("citation blocks export: %s", res.Summary)
	}
	return nil
}

// claimFromFlags assembles a CitationClaim from command-line flags.
// Free-form --field pairs land in the claim data map; the convenience
// flags (--title, --journal, --url) are shorthands for common fields.
func claimFromFlags(cmd *cobra.Command) (types.CitationClaim, error) {
	doi, _ := cmd.Flags().GetString("doi")
	isbn, _ := cmd.Flags().GetString("isbn")
	arxivID, _ := cmd.Flags().GetString("arxiv")
	authors, _ := cmd.Flags().GetStringSlice("author")
	year, _ := cmd.Flags().GetInt("year")
	sourceType, _ := cmd.Flags().GetString("type")
	sourceID, _ := cmd.Flags().GetString("source-id")

	data := map[string]string{}
	fields, _ := cmd.Flags().GetStringSlice("field")
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return types.CitationClaim{}, fmt.Errorf("invalid --field %q: want key=value", f)
		}
		data[key] = value
	}

	for _, flag := range []string{"title", "journal", "url"} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			data[flag] = v
		}
	}
	if len(authors) > 0 {
		data["authors"] = strings.Join(authors, "; ")
	}
	if year != 0 {
		data["year"] = fmt.Sprintf("%d", year)
	}

	return types.CitationClaim{
		SourceID:   sourceID,
		DOI:        doi,
		ISBN:       isbn,
		ArxivID:    arxivID,
		Authors:    authors,
		Year:       year,
		SourceType: types.SourceType(sourceType),
		Data:       data,
	}, nil
}

// printResult writes a per-layer rundown followed by the verdict.
func printResult(w io.Writer, res types.FullValidationResult) {
	for _, r := range res.FormatResults {
		printCheck(w, r)
	}
	if res.ExistenceResult != nil {
		printCheck(w, *res.ExistenceResult)
	}
	if res.Metadata != nil {
		fmt.Fprintf(w, "  registry  %q, %s (%d)\n",
			res.Metadata.Title, strings.Join(res.Metadata.Authors, "; "), res.Metadata.Year)
	}
	for _, req := range res.VerificationRequests {
		fmt.Fprintf(w, "  pending   layer 3  %s\n", req.Prompt)
	}
	if res.CrossProjectResult != nil {
		printCheck(w, *res.CrossProjectResult)
	}
	for _, c := range res.Conflicts {
		fmt.Fprintf(w, "  conflict  %s (%s): %s\n", c.DocumentTitle, c.AuthorName, c.Interpretation)
	}
	for _, f := range res.RedFlags {
		fmt.Fprintf(w, "  flag      %-8s %s\n", f.Severity, f.Message)
	}

	fmt.Fprintf(w, "\n%s: %s\n", res.OverallStatus, res.Summary)
}

func printCheck(w io.Writer, r types.ValidationResult) {
	fmt.Fprintf(w, "  %-9s layer %d  %s\n", r.Status, r.Layer, r.Message)
}

func init() {
	validateCmd.Flags().String("source-id", "", "identifier for the citation in reports")
	validateCmd.Flags().String("document", "", "owning document ID, scopes the cross-document check")
	validateCmd.Flags().String("doi", "", "DOI to validate")
	validateCmd.Flags().String("isbn", "", "ISBN-10 or ISBN-13 to validate")
	validateCmd.Flags().String("arxiv", "", "arXiv ID to validate")
	validateCmd.Flags().StringSlice("author", nil, "cited author (repeatable)")
	validateCmd.Flags().Int("year", 0, "cited publication year")
	validateCmd.Flags().String("type", "journal", "source type: journal, book, conference, webpage, thesis")
	validateCmd.Flags().String("title", "", "cited title")
	validateCmd.Flags().String("journal", "", "cited journal name")
	validateCmd.Flags().String("url", "", "cited URL (webpage sources)")
	validateCmd.Flags().StringSlice("field", nil, "extra citation field as key=value (repeatable)")
	validateCmd.Flags().Bool("offline", false, "skip registry lookups")
	validateCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(validateCmd)
}
