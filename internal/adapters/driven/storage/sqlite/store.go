package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/parecer-labs/parecer-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a SQLite-backed document store. Analysis results written
// through it survive across CLI invocations.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.parecer/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".parecer", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores a new document entry.
func (s *Store) Save(ctx context.Context, doc *domain.AnalyzedDocument) error {
	keyPointsJSON, highlightsJSON, err := marshalAnalysis(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, name, source_format, byte_size, uploaded_at, processed,
			 summary, conclusion, content, key_points, highlights, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source_format = excluded.source_format,
			byte_size = excluded.byte_size,
			uploaded_at = excluded.uploaded_at,
			processed = excluded.processed,
			summary = excluded.summary,
			conclusion = excluded.conclusion,
			content = excluded.content,
			key_points = excluded.key_points,
			highlights = excluded.highlights,
			analyzed_at = excluded.analyzed_at
	`, doc.ID, doc.Name, string(doc.SourceFormat), doc.ByteSize, doc.UploadedAt,
		doc.Processed, doc.Summary, doc.Conclusion, doc.Content,
		keyPointsJSON, highlightsJSON, nullTime(doc.AnalyzedAt))

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Replace swaps the stored entry for the document with the same ID.
func (s *Store) Replace(ctx context.Context, doc *domain.AnalyzedDocument) error {
	keyPointsJSON, highlightsJSON, err := marshalAnalysis(doc)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET
			name = ?, source_format = ?, byte_size = ?, uploaded_at = ?,
			processed = ?, summary = ?, conclusion = ?, content = ?,
			key_points = ?, highlights = ?, analyzed_at = ?
		WHERE id = ?
	`, doc.Name, string(doc.SourceFormat), doc.ByteSize, doc.UploadedAt,
		doc.Processed, doc.Summary, doc.Conclusion, doc.Content,
		keyPointsJSON, highlightsJSON, nullTime(doc.AnalyzedAt), doc.ID)

	if err != nil {
		return fmt.Errorf("replacing document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking replace result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.AnalyzedDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_format, byte_size, uploaded_at, processed,
		       summary, conclusion, content, key_points, highlights, analyzed_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

// List returns all stored documents, most recent first.
func (s *Store) List(ctx context.Context) ([]domain.AnalyzedDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source_format, byte_size, uploaded_at, processed,
		       summary, conclusion, content, key_points, highlights, analyzed_at
		FROM documents
		ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.AnalyzedDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// marshalAnalysis serialises the structured analysis fields.
func marshalAnalysis(doc *domain.AnalyzedDocument) (keyPoints, highlights string, err error) {
	kp, err := json.Marshal(doc.KeyPoints)
	if err != nil {
		return "", "", fmt.Errorf("marshalling key points: %w", err)
	}
	hl, err := json.Marshal(doc.Highlights)
	if err != nil {
		return "", "", fmt.Errorf("marshalling highlights: %w", err)
	}
	return string(kp), string(hl), nil
}

// scanDocument scans one document row through the given scan function.
func scanDocument(scan func(...any) error) (*domain.AnalyzedDocument, error) {
	var doc domain.AnalyzedDocument
	var sourceFormat, keyPointsJSON, highlightsJSON string
	var analyzedAt sql.NullTime

	err := scan(&doc.ID, &doc.Name, &sourceFormat, &doc.ByteSize, &doc.UploadedAt,
		&doc.Processed, &doc.Summary, &doc.Conclusion, &doc.Content,
		&keyPointsJSON, &highlightsJSON, &analyzedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.SourceFormat = domain.SourceFormat(sourceFormat)
	if analyzedAt.Valid {
		doc.AnalyzedAt = analyzedAt.Time
	}

	if keyPointsJSON != "" {
		if err := json.Unmarshal([]byte(keyPointsJSON), &doc.KeyPoints); err != nil {
			return nil, fmt.Errorf("unmarshalling key points: %w", err)
		}
	}
	if highlightsJSON != "" {
		if err := json.Unmarshal([]byte(highlightsJSON), &doc.Highlights); err != nil {
			return nil, fmt.Errorf("unmarshalling highlights: %w", err)
		}
	}
	return &doc, nil
}

// nullTime converts a zero time to NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
