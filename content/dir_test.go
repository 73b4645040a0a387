package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func post(title, desc string) string {
	return "---\ntitle: " + title + "\ndescription: " + desc + "\npubDate: 2024-03-01\n---\n\ncontent\n"
}

func TestDirEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "post-1.md", post("Hello World", "A test post"))
	writeFile(t, root, "guides/Deep Dive.mdx", post("Deep", "Dive"))
	writeFile(t, root, "notes.txt", "ignored")
	writeFile(t, root, ".hidden.md", "ignored too")

	entries, err := NewDir(root).Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ids := []string{entries[0].ID, entries[1].ID}
	assert.ElementsMatch(t, []string{"post-1", "guides/deep-dive"}, ids)
}

func TestDirEntriesFailsOnBadFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.md", post("ok", "ok"))
	writeFile(t, root, "bad.md", "---\ntitle: [unterminated\n---\n")

	entries, err := NewDir(root).Entries(context.Background())
	assert.Error(t, err)
	assert.Nil(t, entries)
}

func TestDirEntriesMissingRoot(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "nope")).Entries(context.Background())
	assert.Error(t, err)
}

func TestDirEntriesHonorsContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", post("a", "a"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDir(root).Entries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
