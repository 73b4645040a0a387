package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding collection entries. It satisfies
// Collection, so a synced database can stand in for the markdown directory.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while a sync writes; busy_timeout makes the
	// writer wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    pub_date TEXT NOT NULL,
    updated_date TEXT NOT NULL DEFAULT '',
    hero_image TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT ',',
    category TEXT NOT NULL DEFAULT 'other',
    source TEXT NOT NULL DEFAULT 'manual',
    source_url TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

const entryColumns = `id, path, title, description, pub_date, updated_date, hero_image, tags, category, source, source_url, author, draft`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e                Entry
		pubDate, updated string
		tags             string
		category, source string
		draft            int
	)
	if err := row.Scan(&e.ID, &e.Path, &e.Title, &e.Description, &pubDate, &updated, &e.HeroImage, &tags, &category, &source, &e.SourceURL, &e.Author, &draft); err != nil {
		return Entry{}, err
	}
	t, err := time.Parse(time.RFC3339, pubDate)
	if err != nil {
		return Entry{}, fmt.Errorf("content: entry %s: pub_date: %w", e.ID, err)
	}
	e.PubDate = t
	if updated != "" {
		u, err := time.Parse(time.RFC3339, updated)
		if err != nil {
			return Entry{}, fmt.Errorf("content: entry %s: updated_date: %w", e.ID, err)
		}
		e.UpdatedDate = &u
	}
	e.Tags = ParseTags(tags)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	e.Category = Category(category)
	e.Source = Source(source)
	e.Draft = draft == 1
	return e, nil
}

// Entries returns every stored entry, drafts included, newest first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY pub_date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry returns a single entry by id regardless of draft status.
func (s *Store) GetEntry(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// SaveEntry upserts an entry. Tags are normalized to lowercase.
func (s *Store) SaveEntry(ctx context.Context, e Entry) error {
	return saveEntry(ctx, s.db, e)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveEntry(ctx context.Context, db execer, e Entry) error {
	if e.ID == "" {
		return ErrEmptyID
	}
	normalizedTags := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	updated := ""
	if e.UpdatedDate != nil {
		updated = e.UpdatedDate.UTC().Format(time.RFC3339)
	}
	draft := 0
	if e.Draft {
		draft = 1
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Path, e.Title, e.Description, e.PubDate.UTC().Format(time.RFC3339), updated, e.HeroImage,
		tagString, string(e.Category), string(e.Source), e.SourceURL, e.Author, draft)
	return err
}

// DeleteEntry removes an entry by id.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	return err
}

// Sync replaces the stored entries with the contents of src in a single
// transaction and returns the number of entries written. When src fails or
// two published entries share an id the store is left untouched. A draft
// that shares its id with a published entry is not stored.
func (s *Store) Sync(ctx context.Context, src Collection) (int, error) {
	all, err := src.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("content: sync: %w", err)
	}
	entries, err := uniqueEntries(all)
	if err != nil {
		return 0, fmt.Errorf("content: sync: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := saveEntry(ctx, tx, e); err != nil {
			return 0, fmt.Errorf("content: sync %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// uniqueEntries keeps one entry per id, preferring the published one. Two
// published entries with one id are an error, as in Enumerate.
func uniqueEntries(entries []Entry) ([]Entry, error) {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		i, seen := index[e.ID]
		switch {
		case !seen:
			index[e.ID] = len(out)
			out = append(out, e)
		case !e.Draft && !out[i].Draft:
			return nil, fmt.Errorf("%q from %s and %s: %w", e.ID, out[i].Path, e.Path, ErrDuplicateID)
		case out[i].Draft && !e.Draft:
			out[i] = e
		}
	}
	return out, nil
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
