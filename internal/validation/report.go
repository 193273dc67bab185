// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"go.yaml.in/yaml/v3"
)

// WriteYAML writes the report to w as YAML.
func (r *ProjectReport) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON writes the report to w as indented JSON.
func (r *ProjectReport) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteSummary writes a terse per-source rundown to w for terminal use.
// Sources print in ID order so runs are comparable.
func (r *ProjectReport) WriteSummary(w io.Writer) error {
	ids := make([]string, 0, len(r.Results))
	for id := range r.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "%s (%s)\n", r.DocumentTitle, r.DocumentID)
	for _, id := range ids {
		res := r.Results[id]
		fmt.Fprintf(w, "  %-8s %s: %s\n", res.OverallStatus, id, res.Summary)
	}
	for _, f := range r.DocumentFlags {
		fmt.Fprintf(w, "  flag     %s: %s\n", f.Type, f.Message)
	}

	fmt.Fprintf(w, "\nvalid: %d, warnings: %d, invalid: %d\n",
		r.ValidCount, r.WarningCount, r.InvalidCount)
	if r.BlocksExport {
		fmt.Fprintln(w, "export blocked: resolve the invalid citations above")
	}
	return nil
}
