package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCollection struct {
	entries []Entry
	err     error
}

func (s staticCollection) Entries(context.Context) ([]Entry, error) {
	return s.entries, s.err
}

func TestEnumerateReturnsPublishedSummaries(t *testing.T) {
	coll := staticCollection{entries: []Entry{
		{ID: "post-2", Title: "Second", Description: "two"},
		{ID: "post-1", Title: "Hello World", Description: "A test post"},
		{ID: "draft", Title: "WIP", Description: "not yet", Draft: true},
	}}

	posts, err := Enumerate(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, []PostSummary{
		{ID: "post-1", Title: "Hello World", Description: "A test post"},
		{ID: "post-2", Title: "Second", Description: "two"},
	}, posts)
}

func TestEnumerateQueryFailureReturnsNoPosts(t *testing.T) {
	boom := errors.New("collection unavailable")
	coll := staticCollection{
		entries: []Entry{{ID: "post-1", Title: "t"}},
		err:     boom,
	}

	posts, err := Enumerate(context.Background(), coll)
	assert.Nil(t, posts)
	assert.ErrorIs(t, err, boom)
}

func TestEnumerateRejectsEmptyID(t *testing.T) {
	coll := staticCollection{entries: []Entry{{ID: "ok"}, {ID: "", Path: "weird.md"}}}
	posts, err := Enumerate(context.Background(), coll)
	assert.Nil(t, posts)
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestEnumerateRejectsDuplicateID(t *testing.T) {
	coll := staticCollection{entries: []Entry{
		{ID: "same", Path: "a/same.md"},
		{ID: "same", Path: "same.mdx"},
	}}
	posts, err := Enumerate(context.Background(), coll)
	assert.Nil(t, posts)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestEnumerateDuplicateDraftIsIgnored(t *testing.T) {
	coll := staticCollection{entries: []Entry{
		{ID: "same", Path: "same.md"},
		{ID: "same", Path: "same-draft.md", Draft: true},
	}}
	posts, err := Enumerate(context.Background(), coll)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
