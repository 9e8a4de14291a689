package notes

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/poiesic/palette/core"
)

// Store is the persistent notes store.
type Store interface {
	// Add creates a note and returns it with its assigned id.
	Add(ctx context.Context, title, content string) (*core.Note, error)

	// All returns every note, most recently updated first.
	All(ctx context.Context) ([]core.Note, error)

	// Close closes the underlying database.
	Close() error
}

type store struct {
	db *sql.DB
}

var _ Store = (*store)(nil)

// NewStore opens the notes database at baseDir/notes.db, creating the
// directory and schema as needed. Pragmas ride on the connection string so
// they apply to every pooled connection.
func NewStore(baseDir string) (Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create notes directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "notes.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &store{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
	  id         TEXT PRIMARY KEY,
	  title      TEXT NOT NULL,
	  content    TEXT NOT NULL,
	  created_at INTEGER NOT NULL,
	  updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate notes schema: %w", err)
	}
	return nil
}

func newID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func (s *store) Add(ctx context.Context, title, content string) (*core.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now().UTC()
	note := &core.Note{
		ID:        newID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, title, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, now.UnixMicro(), now.UnixMicro())
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}
	return note, nil
}

func (s *store) All(ctx context.Context) ([]core.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at
		 FROM notes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var n core.Note
		var created, updated int64
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &created, &updated); err != nil {
			return nil, err
		}
		n.CreatedAt = time.UnixMicro(created).UTC()
		n.UpdatedAt = time.UnixMicro(updated).UTC()
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *store) Close() error {
	return s.db.Close()
}
