package siteconfig

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("siteconfig: invalid configuration")

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"

	WallpaperBanner     = "banner"
	WallpaperFullscreen = "fullscreen"
	WallpaperNone       = "none"

	MusicMeting = "meting"
	MusicLocal  = "local"
)

var (
	themes           = []string{ThemeSystem, ThemeLight, ThemeDark}
	wallpaperModes   = []string{WallpaperBanner, WallpaperFullscreen, WallpaperNone}
	positions        = []string{"top", "center", "bottom"}
	transparentModes = []string{"semi", "full", "semifull"}
	componentTypes   = []string{"profile", "announcement", "categories", "tags", "toc", "music-player", "custom"}
	sides            = []string{"left", "right"}
	placements       = []string{"top", "sticky"}
	deviceLayouts    = []string{"hidden", "drawer", "sidebar"}
	musicModes       = []string{MusicMeting, MusicLocal}
	metingServers    = []string{"netease", "tencent", "kugou", "xiami", "baidu"}
	metingTypes      = []string{"playlist", "song", "album", "search", "artist"}
	pioModes         = []string{"static", "draggable"}
)

type checker struct {
	errs []error
}

func (c *checker) fail(field, format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf("%s: %s", field, fmt.Sprintf(format, args...)))
}

func (c *checker) oneOf(field, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		c.fail(field, "%q is not one of %s", value, strings.Join(allowed, ", "))
	}
}

func (c *checker) between(field string, v, lo, hi float64) {
	if v < lo || v > hi {
		c.fail(field, "%v is outside [%v, %v]", v, lo, hi)
	}
}

func (c *checker) absURL(field, v string) {
	if v == "" {
		return
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.fail(field, "%q is not an absolute URL", v)
	}
}

// Validate checks every field against the schema. All problems are reported
// together, joined and wrapped with ErrInvalid.
func (cfg *Config) Validate() error {
	var c checker

	c.absURL("consts.url", cfg.Consts.URL)
	if cfg.Consts.Title == "" {
		c.fail("consts.title", "must not be empty")
	}

	s := cfg.Site
	c.absURL("site.siteURL", s.SiteURL)
	if !strings.HasSuffix(s.SiteURL, "/") {
		c.fail("site.siteURL", "%q must end with a slash", s.SiteURL)
	}
	c.between("site.timeZone", float64(s.TimeZone), -12, 12)
	c.between("site.themeColor.hue", float64(s.ThemeColor.Hue), 0, 360)
	c.oneOf("site.defaultTheme", s.DefaultTheme, themes)

	w := s.Wallpaper
	c.oneOf("site.wallpaper.mode", w.Mode, wallpaperModes)
	c.oneOf("site.wallpaper.position", w.Position, positions)
	c.oneOf("site.wallpaper.banner.navbar.transparentMode", w.Banner.Navbar.TransparentMode, transparentModes)
	c.oneOf("site.wallpaper.fullscreen.navbar.transparentMode", w.Fullscreen.Navbar.TransparentMode, transparentModes)
	c.between("site.wallpaper.fullscreen.opacity", w.Fullscreen.Opacity, 0, 1)
	if w.Carousel.Interval <= 0 {
		c.fail("site.wallpaper.carousel.interval", "must be positive")
	}
	if w.Mode != WallpaperNone && len(w.Src.Desktop) == 0 && len(w.Src.Mobile) == 0 {
		c.fail("site.wallpaper.src", "at least one image is required for mode %q", w.Mode)
	}
	c.absURL("site.wallpaper.banner.credit.url", w.Banner.Credit.URL)

	for i, l := range cfg.NavBar.Links {
		validateLink(&c, fmt.Sprintf("navBar.links[%d]", i), l)
	}

	validateSidebar(&c, cfg.SidebarLayout)

	c.absURL("post.license.url", cfg.Post.License.URL)

	p := cfg.Particle
	if p.ParticleNum < 0 {
		c.fail("particle.particleNum", "must not be negative")
	}
	if p.LimitTimes < -1 {
		c.fail("particle.limitTimes", "must be -1 or more")
	}
	for _, r := range []struct {
		field string
		Range
	}{
		{"particle.size", p.Size},
		{"particle.opacity", p.Opacity},
		{"particle.speed.horizontal", p.Speed.Horizontal},
		{"particle.speed.vertical", p.Speed.Vertical},
	} {
		if r.Min > r.Max {
			c.fail(r.field, "min %v is greater than max %v", r.Min, r.Max)
		}
	}
	c.between("particle.opacity.min", p.Opacity.Min, 0, 1)
	c.between("particle.opacity.max", p.Opacity.Max, 0, 1)
	if p.Speed.FadeSpeed > p.Opacity.Min {
		c.fail("particle.speed.fadeSpeed", "%v must not exceed opacity.min %v", p.Speed.FadeSpeed, p.Opacity.Min)
	}

	m := cfg.MusicPlayer
	c.oneOf("musicPlayer.mode", m.Mode, musicModes)
	if m.Mode == MusicMeting {
		c.absURL("musicPlayer.meting.meting_api", m.Meting.API)
		c.oneOf("musicPlayer.meting.server", m.Meting.Server, metingServers)
		c.oneOf("musicPlayer.meting.type", m.Meting.Type, metingTypes)
	}
	if m.Enable && m.Mode == MusicLocal && len(m.Local.Playlist) == 0 {
		c.fail("musicPlayer.local.playlist", "must not be empty in local mode")
	}

	pio := cfg.Pio
	c.oneOf("pio.mode", pio.Mode, pioModes)
	c.oneOf("pio.position", pio.Position, sides)
	if pio.Enable && len(pio.Models) == 0 {
		c.fail("pio.models", "at least one model is required")
	}

	if cfg.Umami.Enabled {
		c.absURL("umami.baseUrl", cfg.Umami.BaseURL)
	}

	if len(c.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(c.errs...))
}

func validateLink(c *checker, field string, l NavLink) {
	if l.Name == "" {
		c.fail(field+".name", "must not be empty")
	}
	if l.URL == "" {
		c.fail(field+".url", "must not be empty")
	}
	if l.External {
		c.absURL(field+".url", l.URL)
	}
	for i, child := range l.Children {
		validateLink(c, fmt.Sprintf("%s.children[%d]", field, i), child)
	}
}

func validateSidebar(c *checker, s SidebarLayout) {
	type slot struct {
		side  string
		order int
	}
	seen := make(map[slot]string)
	for i, comp := range s.Components {
		field := fmt.Sprintf("sidebarLayout.components[%d]", i)
		c.oneOf(field+".type", comp.Type, componentTypes)
		c.oneOf(field+".side", comp.Side, sides)
		c.oneOf(field+".position", comp.Position, placements)
		if comp.Responsive != nil && comp.Responsive.CollapseThreshold < 1 {
			c.fail(field+".responsive.collapseThreshold", "must be at least 1")
		}
		if comp.Type == "toc" {
			if depth, ok := comp.CustomProps["depth"]; ok {
				d, isInt := depth.(int)
				if !isInt || d < 1 || d > 6 {
					c.fail(field+".customProps.depth", "%v is outside [1, 6]", depth)
				}
			}
		}
		if !comp.Enable {
			continue
		}
		key := slot{comp.Side, comp.Order}
		if other, dup := seen[key]; dup {
			c.fail(field+".order", "%s and %s both use %s order %d", other, comp.Type, comp.Side, comp.Order)
		}
		seen[key] = comp.Type
	}
	l := s.Responsive.Layout
	c.oneOf("sidebarLayout.responsive.layout.mobile", l.Mobile, deviceLayouts)
	c.oneOf("sidebarLayout.responsive.layout.tablet", l.Tablet, deviceLayouts)
	c.oneOf("sidebarLayout.responsive.layout.desktop", l.Desktop, deviceLayouts)
}
