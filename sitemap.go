package sitekit

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kulius/sitekit/content"
)

const (
	sitemapNS      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapImageNS = "http://www.google.com/schemas/sitemap-image/1.1"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	Image   string       `xml:"xmlns:image,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc    string         `xml:"loc"`
	Images []sitemapImage `xml:"image:image"`
}

type sitemapImage struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

// ImageSitemap builds an image sitemap with one entry per post page.
func (a *App) ImageSitemap(posts []content.PostSummary) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(posts))
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:    a.PostURL(p.ID),
			Images: []sitemapImage{{Loc: a.ImageURL(p.ID), Title: p.Title}},
		})
	}
	out, err := xml.MarshalIndent(sitemapURLSet{
		XMLNS: sitemapNS,
		Image: sitemapImageNS,
		URLs:  urls,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func (a *App) renderSitemap(c echo.Context, posts []content.PostSummary) error {
	out, err := a.ImageSitemap(posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", out)
}
