package sitekit

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/kulius/sitekit/content"
	"github.com/kulius/sitekit/ogimage"
)

// Content sources accepted by Config.ContentSource.
const (
	SourceDir    = "dir"
	SourceSQLite = "sqlite"
)

// Config holds all runtime configuration for a sitekit server or generation run.
type Config struct {
	Addr string // Listen address (default ":4321")

	ContentDir     string // Markdown collection root (default "src/content/blog")
	ContentSource  string // "dir" or "sqlite" (default "dir")
	DatabasePath   string // SQLite path for the "sqlite" source (default "data/content.db")
	SiteConfigPath string // Optional site config YAML; empty uses built-in defaults
	FontPath       string // OG font file (default "public/fonts/atkinson-bold.ttf")
	ImageWidth     int    // Output PNG width (default 1200)
	Workers        int    // Parallel renders for Generate (default NumCPU)
	Watch          bool   // Invalidate the post cache on collection changes

	AdminPassword string // Enables /admin when set
	SessionSecret string // Required when AdminPassword is set
	CookieSecure  bool   // Set true for HTTPS

	CacheTTL time.Duration // Post cache TTL (default 5min)

	ReadTimeout  time.Duration // default 10s
	WriteTimeout time.Duration // default 30s

	Logger *slog.Logger // default slog.Default()
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":4321"
	}
	if c.ContentDir == "" {
		c.ContentDir = "src/content/blog"
	}
	if c.ContentSource == "" {
		c.ContentSource = SourceDir
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.FontPath == "" {
		c.FontPath = ogimage.DefaultFontPath
	}
	if c.ImageWidth <= 0 {
		c.ImageWidth = ogimage.CanvasWidth
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithCollection replaces the configured content source.
func WithCollection(c content.Collection) Option {
	return func(a *App) {
		a.collection = c
	}
}

// WithFonts registers font assets instead of loading Config.FontPath.
func WithFonts(assets ...ogimage.FontAsset) Option {
	return func(a *App) {
		a.fonts = assets
	}
}
