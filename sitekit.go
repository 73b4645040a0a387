// Package sitekit serves and generates the Open Graph preview images of a
// markdown blog. It wires the content collection, the image renderer, the
// post cache, metrics and an optional admin preview into an Echo application.
package sitekit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kulius/sitekit/content"
	"github.com/kulius/sitekit/ogimage"
	"github.com/kulius/sitekit/siteconfig"
)

// App is the central sitekit application. It wires together the collection,
// renderer, cache, handlers and middleware.
type App struct {
	Config   Config
	Site     *siteconfig.Config
	Echo     *echo.Echo
	Renderer *ogimage.Renderer
	Cache    *PostCache
	Metrics  *Metrics
	Store    *content.Store

	collection   content.Collection
	fonts        []ogimage.FontAsset
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	logger       *slog.Logger
	ready        bool
}

// New creates a new App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		logger: cfg.Logger,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init loads the site config, the font and the collection and builds the
// renderer. The font is read exactly once per App.
func (a *App) Init() error {
	if a.Renderer != nil {
		return nil
	}

	site := siteconfig.Default()
	if a.Config.SiteConfigPath != "" {
		loaded, err := siteconfig.Load(a.Config.SiteConfigPath)
		if err != nil {
			return fmt.Errorf("sitekit: load site config: %w", err)
		}
		site = loaded
	}
	a.Site = site

	fonts := a.fonts
	if fonts == nil {
		fonts = []ogimage.FontAsset{ogimage.LoadFont(a.Config.FontPath, a.logger)}
	}
	renderer, err := ogimage.NewRenderer(fonts,
		ogimage.WithBrand(site.Brand()),
		ogimage.WithWidth(a.Config.ImageWidth),
	)
	if err != nil {
		return fmt.Errorf("sitekit: init renderer: %w", err)
	}
	if renderer.Fonts().Fallback() {
		a.logger.Info("rendering with built-in fonts only")
	}

	if a.collection == nil {
		switch a.Config.ContentSource {
		case SourceDir:
			a.collection = content.NewDir(a.Config.ContentDir, content.WithLogger(a.logger))
		case SourceSQLite:
			store, err := content.NewStore(a.Config.DatabasePath)
			if err != nil {
				return fmt.Errorf("sitekit: init store: %w", err)
			}
			a.Store = store
			a.collection = store
		default:
			return fmt.Errorf("sitekit: unknown content source %q", a.Config.ContentSource)
		}
	}

	a.Metrics = NewMetrics()
	a.Cache = NewPostCache(a.collection, a.Config.CacheTTL, a.Metrics)
	a.Renderer = renderer
	return nil
}

// Setup initializes the app and registers middleware and routes without
// listening. The collection must enumerate successfully.
func (a *App) Setup(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("sitekit: SessionSecret is required when AdminPassword is set")
	}
	if err := a.Init(); err != nil {
		return err
	}
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return fmt.Errorf("sitekit: enumerate posts: %w", err)
	}
	a.logger.Info("collection loaded", "posts", len(posts))

	if a.Config.AdminPassword != "" {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves HTTP until ctx is done.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}

	if a.Config.Watch {
		dir, ok := a.collection.(*content.Dir)
		if !ok {
			return fmt.Errorf("sitekit: watch requires the %q content source", SourceDir)
		}
		if err := content.Watch(ctx, dir.Root(), content.DefaultDebounce, a.Cache.Invalidate, a.logger); err != nil {
			return fmt.Errorf("sitekit: %w", err)
		}
	}

	a.Echo.Server.ReadTimeout = a.Config.ReadTimeout
	a.Echo.Server.WriteTimeout = a.Config.WriteTimeout

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown", "error", err)
		}
	}()

	a.logger.Info("serving og images", "addr", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/og/*", a.handleOGImage)
	e.GET("/sitemap-og.xml", a.handleSitemap)
	e.GET("/healthz", a.handleHealth)
	e.GET("/metrics", echo.WrapHandler(a.Metrics.Handler()))

	if a.Config.AdminPassword != "" {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.GET("/admin/og/preview.png", a.handleAdminPreview)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
