package sitekit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kulius/sitekit/content"
	"github.com/kulius/sitekit/views"
)

// Admin preview input limits, in runes.
const (
	maxPreviewTitle       = 200
	maxPreviewDescription = 500
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminPreview renders an arbitrary title and description. The result
// is never cached since it is not tied to a post.
func (a *App) handleAdminPreview(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	title := clip(c.QueryParam("title"), maxPreviewTitle)
	description := clip(c.QueryParam("description"), maxPreviewDescription)
	png, err := a.RenderPost(c.Request().Context(), content.PostSummary{ID: "preview", Title: title, Description: description})
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, mimePNG, png)
}

func (a *App) renderAdminDashboard(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	rows := make([]views.DashboardPost, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, views.DashboardPost{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			PageURL:     a.PostURL(p.ID),
			ImagePath:   ImagePath(p.ID),
			Meta:        a.PageMeta(p),
		})
	}
	return Render(c, views.AdminDashboard(a.Site.Brand().Name, rows, CsrfToken(c)))
}

// PageMeta returns the OpenGraph metadata of a post's page.
func (a *App) PageMeta(p content.PostSummary) views.PageMeta {
	m := views.PageMeta{
		SiteName:    a.Site.Consts.Title,
		Title:       p.Title,
		Description: p.Description,
		URL:         a.PostURL(p.ID),
		OGType:      "article",
	}
	if a.Site.Site.GenerateOgImages {
		m.Image = a.ImageURL(p.ID)
		m.ImageWidth = a.Renderer.Width()
		m.ImageHeight = a.Renderer.Height()
	}
	return m
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
