// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-verifier/internal/store"
	"github.com/pdiddy/citation-verifier/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local document and source store",
	Long: `Store manages the SQLite database of documents and their citation
sources. The cross-document conflict layer consults this store, so
other projects' sources must be added here to be found.`,
}

func openStore() (*store.Store, error) {
	return store.NewStore(pipelineConfig().Store)
}

// --- add-document subcommand ---

var storeAddDocumentCmd = &cobra.Command{
	Use:   "add-document",
	Short: "Add or update a document record",
	RunE:  runStoreAddDocument,
}

func runStoreAddDocument(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")

	if err := st.UpsertDocument(cmd.Context(), types.Document{
		ID: id, Title: title, AuthorName: author,
	}); err != nil {
		return err
	}
	fmt.Printf("Stored document %s\n", id)
	return nil
}

// --- add-source subcommand ---

var storeAddSourceCmd = &cobra.Command{
	Use:   "add-source",
	Short: "Add or update a citation source",
	Long: `Add-source stores one citation record. Describe it with flags, or
point --file at a YAML file holding the full source record; flags
override file values.`,
	RunE: runStoreAddSource,
}

func runStoreAddSource(cmd *cobra.Command, args []string) error {
	src, err := sourceFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.UpsertSource(cmd.Context(), src); err != nil {
		return err
	}
	fmt.Printf("Stored source %s in document %s\n", src.ID, src.DocumentID)
	return nil
}

func sourceFromFlags(cmd *cobra.Command) (types.Source, error) {
	var src types.Source

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return types.Source{}, fmt.Errorf("reading source file: %w", err)
		}
		if err := yaml.Unmarshal(data, &src); err != nil {
			return types.Source{}, fmt.Errorf("parsing source file: %w", err)
		}
	}

	setString := func(flag string, dst *string) {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	setString("id", &src.ID)
	setString("document", &src.DocumentID)
	setString("title", &src.Title)
	setString("doi", &src.DOI)
	setString("isbn", &src.ISBN)
	setString("arxiv", &src.ArxivID)
	setString("content", &src.Content)

	if v, _ := cmd.Flags().GetString("type"); v != "" {
		src.SourceType = types.SourceType(v)
	}
	if authors, _ := cmd.Flags().GetStringSlice("author"); len(authors) > 0 {
		src.Authors = authors
	}
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		src.Year = year
	}

	fields, _ := cmd.Flags().GetStringSlice("field")
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return types.Source{}, fmt.Errorf("invalid --field %q: want key=value", f)
		}
		if src.CitationData == nil {
			src.CitationData = map[string]string{}
		}
		src.CitationData[key] = value
	}

	return src, nil
}

// --- delete-source subcommand ---

var storeDeleteSourceCmd = &cobra.Command{
	Use:   "delete-source <source-id>",
	Short: "Soft-delete a citation source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteSource(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted source %s\n", args[0])
		return nil
	},
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list [document-id]",
	Short: "List documents, or one document's sources",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 0 {
		docs, err := st.ListDocuments(cmd.Context())
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents stored.")
			return nil
		}
		fmt.Printf("%-20s  %-40s  %s\n", "ID", "Title", "Author")
		fmt.Println(strings.Repeat("-", 80))
		for _, d := range docs {
			fmt.Printf("%-20s  %-40s  %s\n", d.ID, truncate(d.Title, 40), d.AuthorName)
		}
		return nil
	}

	sources, err := st.ListSources(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Println("No sources stored for this document.")
		return nil
	}
	fmt.Printf("%-16s  %-10s  %-40s  %-6s  %s\n", "ID", "Type", "Title", "Year", "Identifier")
	fmt.Println(strings.Repeat("-", 100))
	for _, s := range sources {
		claim := s.Claim()
		_, identifier := claim.PrimaryIdentifier()
		fmt.Printf("%-16s  %-10s  %-40s  %-6d  %s\n",
			s.ID, s.SourceType, truncate(s.Title, 40), s.Year, identifier)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	storeAddDocumentCmd.Flags().String("id", "", "document ID")
	storeAddDocumentCmd.Flags().String("title", "", "document title")
	storeAddDocumentCmd.Flags().String("author", "", "document author name")
	storeAddDocumentCmd.MarkFlagRequired("id")

	storeAddSourceCmd.Flags().String("file", "", "YAML file holding the source record")
	storeAddSourceCmd.Flags().String("id", "", "source ID")
	storeAddSourceCmd.Flags().String("document", "", "owning document ID")
	storeAddSourceCmd.Flags().String("type", "", "source type: journal, book, conference, webpage, thesis")
	storeAddSourceCmd.Flags().String("title", "", "cited title")
	storeAddSourceCmd.Flags().StringSlice("author", nil, "cited author (repeatable)")
	storeAddSourceCmd.Flags().Int("year", 0, "cited publication year")
	storeAddSourceCmd.Flags().String("doi", "", "DOI")
	storeAddSourceCmd.Flags().String("isbn", "", "ISBN")
	storeAddSourceCmd.Flags().String("arxiv", "", "arXiv ID")
	storeAddSourceCmd.Flags().String("content", "", "how the document uses this source")
	storeAddSourceCmd.Flags().StringSlice("field", nil, "extra citation field as key=value (repeatable)")

	storeCmd.AddCommand(storeAddDocumentCmd)
	storeCmd.AddCommand(storeAddSourceCmd)
	storeCmd.AddCommand(storeDeleteSourceCmd)
	storeCmd.AddCommand(storeListCmd)

	rootCmd.AddCommand(storeCmd)
}
