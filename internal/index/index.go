// Copyright Sigmanaut Labs, 2026. All rights reserved.

// Package index writes the loaded knowledge base into a SQLite snapshot and
// serves id, tag, and keyword queries from it. The snapshot is a derived,
// rebuildable artifact for downstream RAG consumers, not runtime state: the
// in-memory store in internal/kb remains the source of truth.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sigmanaut-labs/ergokb/internal/kb"
	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

const dbFile = "chunks.db"

// Snapshot is a handle to the SQLite chunk snapshot.
type Snapshot struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the snapshot database at cfg.IndexDir/chunks.db and
// ensures the schema exists.
func Open(cfg types.IndexConfig) (*Snapshot, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Snapshot{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

func (s *Snapshot) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			ord INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			tags TEXT NOT NULL,
			text TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='chunks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE chunks_fts USING fts5(title, text, content=chunks, content_rowid=ord)`,
			`CREATE TRIGGER chunks_ai AFTER INSERT ON chunks BEGIN
				INSERT INTO chunks_fts(rowid, title, text) VALUES (new.ord, new.title, new.text);
			END`,
			`CREATE TRIGGER chunks_ad AFTER DELETE ON chunks BEGIN
				INSERT INTO chunks_fts(chunks_fts, rowid, title, text) VALUES('delete', old.ord, old.title, old.text);
			END`,
			`CREATE TRIGGER chunks_au AFTER UPDATE ON chunks BEGIN
				INSERT INTO chunks_fts(chunks_fts, rowid, title, text) VALUES('delete', old.ord, old.title, old.text);
				INSERT INTO chunks_fts(rowid, title, text) VALUES (new.ord, new.title, new.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Build replaces the snapshot contents with the given store. The ord column
// records insertion order so queries can preserve it.
func (s *Snapshot) Build(ctx context.Context, store *kb.Store) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clearing old snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (ord, id, title, tags, text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range store.Chunks() {
		tagsJSON, _ := json.Marshal(c.Tags)
		if _, err := stmt.ExecContext(ctx, i+1, c.ID, c.Title, string(tagsJSON), c.Text); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", c.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('version', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		store.Version(),
	)
	if err != nil {
		return fmt.Errorf("recording version: %w", err)
	}

	return tx.Commit()
}

// Version returns the content version recorded at build time.
func (s *Snapshot) Version(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&v)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("snapshot has not been built")
	}
	if err != nil {
		return "", fmt.Errorf("reading version: %w", err)
	}
	return v, nil
}

// Get returns the chunk with the given id, or *kb.NotFoundError when absent.
func (s *Snapshot) Get(ctx context.Context, id string) (types.Chunk, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, tags, text FROM chunks WHERE id = ?`, id)

	c, err := scanChunk(row.Scan)
	if err == sql.ErrNoRows {
		return types.Chunk{}, &kb.NotFoundError{ID: id}
	}
	if err != nil {
		return types.Chunk{}, fmt.Errorf("looking up chunk: %w", err)
	}
	return c, nil
}

// QueryOptions holds parameters for snapshot queries.
type QueryOptions struct {
	// Tags filters by tag intersection, matching kb.Store.Filter semantics.
	Tags []string

	// Match is an FTS5 keyword expression over titles and texts. Results
	// come back in insertion order, not relevance order: the snapshot is a
	// keyword filter, not a ranked search engine.
	Match string

	// MaxResults limits result count. Zero uses the snapshot default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return len(q.Tags) == 0 && q.Match == ""
}

// Query returns the chunks matching the options, in insertion order. An
// empty option set returns no chunks rather than the whole snapshot.
func (s *Snapshot) Query(ctx context.Context, opts QueryOptions) ([]types.Chunk, error) {
	if opts.IsEmpty() {
		return nil, nil
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	if opts.Match != "" {
		qb.WriteString(
			`SELECT c.id, c.title, c.tags, c.text
			FROM chunks_fts
			JOIN chunks c ON c.ord = chunks_fts.rowid
			WHERE chunks_fts MATCH ?`)
		args = append(args, opts.Match)
	} else {
		qb.WriteString(
			`SELECT c.id, c.title, c.tags, c.text
			FROM chunks c
			WHERE 1=1`)
	}

	if len(opts.Tags) > 0 {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(c.tags) WHERE value IN (`)
		for i, tag := range opts.Tags {
			if i > 0 {
				qb.WriteString(`, `)
			}
			qb.WriteString(`?`)
			args = append(args, tag)
		}
		qb.WriteString(`))`)
	}

	qb.WriteString(` ORDER BY c.ord LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	var results []types.Chunk
	for rows.Next() {
		c, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func scanChunk(scan func(dest ...any) error) (types.Chunk, error) {
	var c types.Chunk
	var tagsJSON string
	if err := scan(&c.ID, &c.Title, &tagsJSON, &c.Text); err != nil {
		return types.Chunk{}, err
	}
	json.Unmarshal([]byte(tagsJSON), &c.Tags)
	return c, nil
}
