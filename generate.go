package sitekit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/kulius/sitekit/content"
)

// RenderError reports the posts whose image could not be produced.
type RenderError struct {
	Failed map[string]error
}

func (e *RenderError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return fmt.Sprintf("sitekit: %d image(s) failed: %s", len(ids), strings.Join(ids, ", "))
}

// Posts enumerates the collection directly, bypassing the cache.
func (a *App) Posts(ctx context.Context) ([]content.PostSummary, error) {
	if err := a.Init(); err != nil {
		return nil, err
	}
	posts, err := content.Enumerate(ctx, a.collection)
	if err != nil {
		return nil, fmt.Errorf("sitekit: enumerate posts: %w", err)
	}
	return posts, nil
}

// Generate writes og/<id>.png below outDir for every published post using
// Config.Workers parallel renders. An enumeration failure aborts before any
// file is written. A failed post does not stop the others; failures are
// returned together as a *RenderError once the run finishes.
func (a *App) Generate(ctx context.Context, outDir string) (int, error) {
	posts, err := a.Posts(ctx)
	if err != nil {
		return 0, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		written int
		failed  = make(map[string]error)
		sem     = make(chan struct{}, a.Config.Workers)
	)
	for _, p := range posts {
		wg.Add(1)
		sem <- struct{}{}
		go func(p content.PostSummary) {
			defer wg.Done()
			defer func() { <-sem }()

			err := a.writeImage(ctx, outDir, p)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Error("og image failed", "id", p.ID, "error", err)
				failed[p.ID] = err
				return
			}
			written++
		}(p)
	}
	wg.Wait()

	a.logger.Info("og images generated", "written", written, "failed", len(failed), "out", outDir)
	if len(failed) > 0 {
		return written, &RenderError{Failed: failed}
	}
	return written, nil
}

func (a *App) writeImage(ctx context.Context, outDir string, p content.PostSummary) error {
	rel := filepath.FromSlash(p.ID) + ".png"
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("sitekit: id %q escapes the output directory", p.ID)
	}
	png, err := a.RenderPost(ctx, p)
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, "og", rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sitekit: %w", err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("sitekit: %w", err)
	}
	return nil
}
