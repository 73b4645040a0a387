package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchNotifiesOnContentChange(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	err := Watch(ctx, root, 20*time.Millisecond, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.md"), []byte(post("n", "n")), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change notification")
	}
}

func TestWatchMissingRoot(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), time.Millisecond, func() {}, nil)
	require.Error(t, err)
}
