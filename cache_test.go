package sitekit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulius/sitekit/content"
)

func TestPostCacheServesSnapshot(t *testing.T) {
	coll := &fakeCollection{entries: testEntries()}
	cache := NewPostCache(coll, time.Minute, nil)
	ctx := context.Background()

	posts, err := cache.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "guides/nested-post", posts[0].ID, "posts are sorted by id")

	p, err := cache.Post(ctx, "post-2")
	require.NoError(t, err)
	assert.Equal(t, "Second", p.Title)
	assert.Equal(t, 1, coll.callCount())
}

func TestPostCacheUnknownID(t *testing.T) {
	cache := NewPostCache(&fakeCollection{entries: testEntries()}, time.Minute, nil)

	_, err := cache.Post(context.Background(), "wip")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestPostCacheInvalidate(t *testing.T) {
	coll := &fakeCollection{entries: testEntries()}
	cache := NewPostCache(coll, time.Minute, nil)
	ctx := context.Background()

	_, err := cache.Posts(ctx)
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, coll.callCount())
}

func TestPostCacheExpires(t *testing.T) {
	coll := &fakeCollection{entries: testEntries()}
	cache := NewPostCache(coll, time.Nanosecond, nil)
	ctx := context.Background()

	_, err := cache.Posts(ctx)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cache.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, coll.callCount())
}

func TestPostCacheEmptyCollection(t *testing.T) {
	coll := &fakeCollection{}
	cache := NewPostCache(coll, time.Minute, nil)

	posts, err := cache.Posts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = cache.Posts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, coll.callCount(), "an empty snapshot is still a snapshot")
}

func TestPostCacheFailureKeepsNothing(t *testing.T) {
	coll := &fakeCollection{entries: testEntries()}
	m := NewMetrics()
	cache := NewPostCache(coll, time.Minute, m)
	ctx := context.Background()

	coll.fail(errors.New("unavailable"))
	_, err := cache.Posts(ctx)
	require.Error(t, err)
	_, err = cache.Post(ctx, "post-1")
	require.Error(t, err)

	coll.fail(nil)
	posts, err := cache.Posts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, 3, coll.callCount(), "failures are retried on the next read")
}
