package sitekit

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kulius/sitekit/content"
	"github.com/kulius/sitekit/views"
)

func (a *App) handleOGImage(c echo.Context) error {
	id, ok := strings.CutSuffix(c.Param("*"), ".png")
	if !ok || id == "" {
		return echo.ErrNotFound
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	ctx := c.Request().Context()
	post, err := a.Cache.Post(ctx, id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	png, err := a.RenderPost(ctx, post)
	if err != nil {
		return err
	}
	a.Metrics.imageFetched(c.Request().UserAgent())
	return respondPNG(c, png)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleHealth(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"posts":    len(posts),
		"fallback": a.Renderer.Fonts().Fallback(),
	})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	// Failed responses must never inherit a cacheable directive.
	c.Response().Header().Set("Cache-Control", "no-store")

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/admin/") && c.Request().Method == http.MethodGet {
		_ = RenderStatus(c, code, views.ErrorPage(code))
		return
	}
	if code >= 500 {
		err = echo.NewHTTPError(code)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
