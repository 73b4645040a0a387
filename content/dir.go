package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a collection of markdown files (*.md, *.mdx) below a root directory.
type Dir struct {
	root   string
	logger *slog.Logger
}

// DirOption configures a Dir.
type DirOption func(*Dir)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l *slog.Logger) DirOption {
	return func(d *Dir) {
		d.logger = l
	}
}

// NewDir returns a collection rooted at root.
func NewDir(root string, opts ...DirOption) *Dir {
	d := &Dir{root: root, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the collection's root directory.
func (d *Dir) Root() string {
	return d.root
}

// IsContentFile reports whether name has a collection file extension.
func IsContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return !strings.HasPrefix(filepath.Base(name), ".")
	}
	return false
}

// Entries walks the directory and parses every markdown file. A missing root
// or a single unparsable file fails the whole query.
func (d *Dir) Entries(ctx context.Context) ([]Entry, error) {
	if _, err := os.Stat(d.root); err != nil {
		return nil, fmt.Errorf("content: open collection: %w", err)
	}
	var entries []Entry
	err := filepath.WalkDir(d.root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if de.IsDir() || !IsContentFile(de.Name()) {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", rel, err)
		}
		e, err := ParseEntry(rel, data)
		if err != nil {
			return err
		}
		d.logger.Debug("loaded entry", "id", e.ID, "path", rel, "draft", e.Draft)
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
