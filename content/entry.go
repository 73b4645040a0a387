// Package content reads the blog's content collection and enumerates the posts
// that receive a social preview image.
//
// A collection is any source of Entry records. Two are provided: Dir reads
// markdown files with YAML frontmatter from disk, and Store keeps the same
// records in SQLite.
package content

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAuthor is applied to entries whose frontmatter has no author.
const DefaultAuthor = "蘇勃任"

var (
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("content: entry not found")
	// ErrEmptyID is returned when an entry resolves to an empty identifier.
	ErrEmptyID = errors.New("content: empty entry id")
	// ErrDuplicateID is returned when two published entries share an identifier.
	ErrDuplicateID = errors.New("content: duplicate entry id")
)

// Category groups posts by subject.
type Category string

const (
	CategoryOdoo                  Category = "odoo"
	CategoryAI                    Category = "ai"
	CategoryDigitalTransformation Category = "digital-transformation"
	CategoryOther                 Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryOdoo, CategoryAI, CategoryDigitalTransformation, CategoryOther:
		return true
	}
	return false
}

// Source records how a post entered the collection.
type Source string

const (
	SourceGitHub Source = "github"
	SourceRSS    Source = "rss"
	SourceManual Source = "manual"
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceGitHub, SourceRSS, SourceManual:
		return true
	}
	return false
}

// Entry is one post in the content collection.
type Entry struct {
	ID          string
	Path        string // collection-relative path, empty for store-backed entries
	Title       string
	Description string
	PubDate     time.Time
	UpdatedDate *time.Time
	HeroImage   string
	Tags        []string
	Category    Category
	Source      Source
	SourceURL   string
	Author      string
	Draft       bool
}

// Summary returns the fields the image pipeline consumes.
func (e Entry) Summary() PostSummary {
	return PostSummary{ID: e.ID, Title: e.Title, Description: e.Description}
}

// PostSummary is the (id, title, description) triple rendered into one image.
type PostSummary struct {
	ID          string
	Title       string
	Description string
}

// Collection is a queryable set of entries.
type Collection interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// frontmatter mirrors the YAML keys of a post. Title and description are
// pointers so a missing key can be told apart from an empty value.
type frontmatter struct {
	Title       *string  `yaml:"title"`
	Description *string  `yaml:"description"`
	PubDate     *Date    `yaml:"pubDate"`
	UpdatedDate *Date    `yaml:"updatedDate"`
	HeroImage   string   `yaml:"heroImage"`
	Tags        []string `yaml:"tags"`
	Category    Category `yaml:"category"`
	Source      Source   `yaml:"source"`
	SourceURL   string   `yaml:"sourceUrl"`
	Author      *string  `yaml:"author"`
	Draft       bool     `yaml:"draft"`
	Slug        string   `yaml:"slug"`
}

// ParseEntry parses a markdown document located at rel inside the collection.
// Defaults are applied and the schema is validated.
func ParseEntry(rel string, data []byte) (Entry, error) {
	fm, _, err := SplitFrontmatter(data)
	if err != nil {
		return Entry{}, fmt.Errorf("content: %s: %w", rel, err)
	}
	var raw frontmatter
	if err := yaml.Unmarshal(fm, &raw); err != nil {
		return Entry{}, fmt.Errorf("content: %s: parse frontmatter: %w", rel, err)
	}
	e, err := raw.entry()
	if err != nil {
		return Entry{}, fmt.Errorf("content: %s: %w", rel, err)
	}
	e.Path = rel
	if raw.Slug != "" {
		e.ID = normalizeID(raw.Slug)
	} else {
		e.ID = IDFromPath(rel)
	}
	if e.ID == "" {
		return Entry{}, fmt.Errorf("content: %s: %w", rel, ErrEmptyID)
	}
	return e, nil
}

func (f frontmatter) entry() (Entry, error) {
	var errs []error
	if f.Title == nil {
		errs = append(errs, errors.New("missing required field: title"))
	}
	if f.Description == nil {
		errs = append(errs, errors.New("missing required field: description"))
	}
	if f.PubDate == nil {
		errs = append(errs, errors.New("missing required field: pubDate"))
	}
	if len(errs) > 0 {
		return Entry{}, errors.Join(errs...)
	}

	e := Entry{
		Title:       *f.Title,
		Description: *f.Description,
		PubDate:     f.PubDate.Time,
		HeroImage:   f.HeroImage,
		Tags:        f.Tags,
		Category:    f.Category,
		Source:      f.Source,
		SourceURL:   f.SourceURL,
		Author:      DefaultAuthor,
		Draft:       f.Draft,
	}
	if f.UpdatedDate != nil {
		t := f.UpdatedDate.Time
		e.UpdatedDate = &t
	}
	if f.Author != nil {
		e.Author = *f.Author
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if e.Source == "" {
		e.Source = SourceManual
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate checks the enum and URL fields of e.
func (e Entry) Validate() error {
	var errs []error
	if !e.Category.Valid() {
		errs = append(errs, fmt.Errorf("invalid category %q", e.Category))
	}
	if !e.Source.Valid() {
		errs = append(errs, fmt.Errorf("invalid source %q", e.Source))
	}
	if e.SourceURL != "" {
		u, err := url.Parse(e.SourceURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid sourceUrl %q", e.SourceURL))
		}
	}
	return errors.Join(errs...)
}

// Date is a frontmatter date that accepts the layouts authors actually write.
type Date struct {
	time.Time
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	t, err := ParseDate(n.Value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2 2006",
	"Jan 02 2006",
	"January 2, 2006",
}

// ParseDate parses s using the first matching layout. Dates without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
