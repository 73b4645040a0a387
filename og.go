package sitekit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kulius/sitekit/content"
)

const (
	mimePNG        = "image/png"
	cacheImmutable = "public, max-age=31536000, immutable"
)

// RenderPost renders the OG image of one post.
func (a *App) RenderPost(ctx context.Context, p content.PostSummary) ([]byte, error) {
	start := time.Now()
	png, err := a.Renderer.Render(ctx, p.Title, p.Description)
	a.Metrics.renderObserved(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("sitekit: render %s: %w", p.ID, err)
	}
	return png, nil
}

// respondPNG writes a rendered image. The bytes depend only on the post and
// the fonts, so they may be cached forever.
func respondPNG(c echo.Context, png []byte) error {
	c.Response().Header().Set("Cache-Control", cacheImmutable)
	return c.Blob(http.StatusOK, mimePNG, png)
}
