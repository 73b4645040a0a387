package content

import (
	"context"
	"fmt"
	"sort"
)

// Enumerate returns one summary per published entry in c, sorted by id.
//
// A failing query, an empty id or a duplicate id fails the whole enumeration;
// no partial list is returned.
func Enumerate(ctx context.Context, c Collection) ([]PostSummary, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("content: query collection: %w", err)
	}
	seen := make(map[string]string, len(entries))
	posts := make([]PostSummary, 0, len(entries))
	for _, e := range entries {
		if e.Draft {
			continue
		}
		if e.ID == "" {
			return nil, fmt.Errorf("content: %s: %w", e.Path, ErrEmptyID)
		}
		if prev, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("content: %q from %s and %s: %w", e.ID, prev, e.Path, ErrDuplicateID)
		}
		seen[e.ID] = e.Path
		posts = append(posts, e.Summary())
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}
