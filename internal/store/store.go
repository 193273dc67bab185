// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists documents and their citation sources in a
// SQLite database and answers the cross-document usage queries the
// conflict checker needs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citation-verifier/internal/crossproject"
	"github.com/pdiddy/citation-verifier/pkg/types"
)

const dbFile = "citations.db"

// Store manages the citation SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at dataDir/citations.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT,
			author_name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sources (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id),
			source_type TEXT,
			title TEXT,
			authors TEXT,
			year INTEGER,
			doi TEXT,
			isbn TEXT,
			arxiv_id TEXT,
			content TEXT,
			citation_data TEXT,
			deleted INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sources_document_id ON sources(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sources_doi ON sources(doi)`,
		`CREATE INDEX IF NOT EXISTS idx_sources_isbn ON sources(isbn)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// UpsertDocument inserts or replaces a document record.
func (s *Store) UpsertDocument(ctx context.Context, doc types.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, author_name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, author_name=excluded.author_name`,
		doc.ID, doc.Title, doc.AuthorName,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}
	return nil
}

// GetDocument loads one document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (types.Document, error) {
	var doc types.Document
	var title, author sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, author_name FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &title, &author)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Document{}, fmt.Errorf("document %s not found", id)
		}
		return types.Document{}, fmt.Errorf("loading document: %w", err)
	}

	doc.Title = title.String
	doc.AuthorName = author.String
	return doc, nil
}

// ListDocuments returns every document, ordered by title.
func (s *Store) ListDocuments(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author_name FROM documents ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var doc types.Document
		var title, author sql.NullString
		if err := rows.Scan(&doc.ID, &title, &author); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Title = title.String
		doc.AuthorName = author.String
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpsertSource inserts or replaces a source record. The owning
// document must already exist.
func (s *Store) UpsertSource(ctx context.Context, src types.Source) error {
	if src.ID == "" || src.DocumentID == "" {
		return fmt.Errorf("source ID and document ID are required")
	}

	authorsJSON, _ := json.Marshal(src.Authors)
	dataJSON, _ := json.Marshal(src.CitationData)

	deleted := 0
	if src.Deleted {
		deleted = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sources
			(id, document_id, source_type, title, authors, year, doi, isbn, arxiv_id, content, citation_data, deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		src.ID, src.DocumentID, string(src.SourceType), src.Title,
		string(authorsJSON), src.Year, src.DOI, src.ISBN, src.ArxivID,
		src.Content, string(dataJSON), deleted,
	)
	if err != nil {
		return fmt.Errorf("upserting source: %w", err)
	}
	return nil
}

// DeleteSource soft-deletes a source. The row stays for history but
// stops appearing in listings and usage queries.
func (s *Store) DeleteSource(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sources SET deleted = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("source %s not found", id)
	}
	return nil
}

// ListSources returns the non-deleted sources of one document.
func (s *Store) ListSources(ctx context.Context, documentID string) ([]types.Source, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, source_type, title, authors, year, doi, isbn, arxiv_id, content, citation_data
		 FROM sources WHERE document_id = ? AND deleted = 0
		 ORDER BY id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	defer rows.Close()

	var sources []types.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// FindUsages returns every non-deleted source, across all documents,
// carrying the given DOI or ISBN, joined to its document. Empty
// identifiers do not match.
func (s *Store) FindUsages(ctx context.Context, doi, isbn string) ([]crossproject.SourceUsage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.document_id, d.title, d.author_name, s.content, s.title
		 FROM sources s
		 LEFT JOIN documents d ON s.document_id = d.id
		 WHERE s.deleted = 0
		   AND ((? != '' AND s.doi = ?) OR (? != '' AND s.isbn = ?))
		 ORDER BY s.document_id, s.id`,
		doi, doi, isbn, isbn)
	if err != nil {
		return nil, fmt.Errorf("querying source usages: %w", err)
	}
	defer rows.Close()

	var usages []crossproject.SourceUsage
	for rows.Next() {
		var u crossproject.SourceUsage
		var docTitle, author, content, citTitle sql.NullString
		if err := rows.Scan(&u.SourceID, &u.DocumentID, &docTitle, &author, &content, &citTitle); err != nil {
			return nil, fmt.Errorf("scanning usage: %w", err)
		}
		u.DocumentTitle = docTitle.String
		u.AuthorName = author.String
		u.Content = content.String
		u.CitationTitle = citTitle.String
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

func scanSource(rows *sql.Rows) (types.Source, error) {
	var src types.Source
	var srcType string
	var title, content, doi, isbn, arxivID, authorsJSON, dataJSON sql.NullString

	if err := rows.Scan(
		&src.ID, &src.DocumentID, &srcType, &title, &authorsJSON, &src.Year,
		&doi, &isbn, &arxivID, &content, &dataJSON,
	); err != nil {
		return types.Source{}, fmt.Errorf("scanning source: %w", err)
	}

	src.SourceType = types.SourceType(srcType)
	src.Title = title.String
	src.DOI = doi.String
	src.ISBN = isbn.String
	src.ArxivID = arxivID.String
	src.Content = content.String
	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &src.Authors)
	}
	if dataJSON.Valid {
		json.Unmarshal([]byte(dataJSON.String), &src.CitationData)
	}
	return src, nil
}
