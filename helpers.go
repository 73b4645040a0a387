package sitekit

import (
	"net/url"
	"path"
	"strings"

	"github.com/kulius/sitekit/views"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// ImagePath returns the site-relative URL path of a post's OG image.
func ImagePath(id string) string {
	return "/og/" + views.PathEscape(id) + ".png"
}

// SiteURL returns the canonical site URL with a trailing slash.
func (a *App) SiteURL() string {
	u := a.Site.Site.SiteURL
	if u == "" {
		u = a.Site.Consts.URL
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// PostURL returns the absolute URL of a post's page.
func (a *App) PostURL(id string) string {
	return BuildURL(a.SiteURL(), "blog", id)
}

// ImageURL returns the absolute URL of a post's OG image.
func (a *App) ImageURL(id string) string {
	return strings.TrimSuffix(a.SiteURL(), "/") + ImagePath(id)
}
