// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-verifier/internal/crossproject"
	"github.com/pdiddy/citation-verifier/internal/registry"
	"github.com/pdiddy/citation-verifier/internal/store"
	"github.com/pdiddy/citation-verifier/internal/validation"
)

var projectCmd = &cobra.Command{
	Use:   "project <document-id>",
	Short: "Validate every source of one document",
	Long: `Project loads a document's sources from the store and runs the full
pipeline against each of them concurrently. It prints a per-source
summary, optionally writes a YAML report file, and exits non-zero when
any citation blocks export.`,
	Args: cobra.ExactArgs(1),
	RunE: runProject,
}

func runProject(cmd *cobra.Command, args []string) error {
	documentID := args[0]

	cfg := pipelineConfig()
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg.Validation.EnableAPIChecks = false
	}

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	var reg validation.RegistryChecker
	if cfg.Validation.EnableAPIChecks {
		reg = registry.NewChecker(cfg.Registry)
	}

	svc := validation.NewService(reg, crossproject.NewChecker(st), cfg.Validation)
	report, err := svc.ValidateProject(cmd.Context(), st, documentID)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return err
		}
	} else {
		if err := report.WriteSummary(os.Stdout); err != nil {
			return err
		}
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		if err := report.WriteYAML(f); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportPath)
	}

	if report.BlocksExport {
		return fmt.Errorf("%d citation(s) block export", report.InvalidCount)
	}
	return nil
}

func init() {
	projectCmd.Flags().Bool("offline", false, "skip registry lookups")
	projectCmd.Flags().Bool("json", false, "output the full report as JSON")
	projectCmd.Flags().String("report", "", "write the full report to a YAML file")

	rootCmd.AddCommand(projectCmd)
}
