package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kulius/sitekit"
	"github.com/kulius/sitekit/content"
	"github.com/kulius/sitekit/siteconfig"
)

func (c *CLI) config(g *Global) sitekit.Config {
	return sitekit.Config{
		ContentDir:     c.ContentDir,
		ContentSource:  c.ContentSource,
		DatabasePath:   c.Database,
		SiteConfigPath: c.SiteConfig,
		FontPath:       c.Font,
		ImageWidth:     c.Width,
		Logger:         g.Logger,
	}
}

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr          string        `short:"a" help:"Listen address" default:":4321" env:"SITEKIT_ADDR"`
	Watch         bool          `short:"w" help:"Reload the collection when content files change"`
	CacheTTL      time.Duration `name:"cache-ttl" help:"How long the post list is cached" default:"5m" env:"SITEKIT_CACHE_TTL"`
	AdminPassword string        `name:"admin-password" help:"Enable the admin preview with this password" env:"ADMIN_PASSWORD"`
	SessionSecret string        `name:"session-secret" help:"Cookie signing secret for admin sessions" env:"SESSION_SECRET"`
	CookieSecure  bool          `name:"cookie-secure" help:"Mark session cookies Secure" env:"COOKIE_SECURE"`
}

func (s *ServeCmd) Run(g *Global, cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := cli.config(g)
	cfg.Addr = s.Addr
	cfg.Watch = s.Watch
	cfg.CacheTTL = s.CacheTTL
	cfg.AdminPassword = s.AdminPassword
	cfg.SessionSecret = s.SessionSecret
	cfg.CookieSecure = s.CookieSecure

	app := sitekit.New(cfg)
	defer func() {
		if err := app.Close(); err != nil {
			g.Logger.Warn("Failed to close app", "error", err)
		}
	}()
	return app.Start(ctx)
}

// GenerateCmd implements the 'generate' command for static builds.
type GenerateCmd struct {
	Output  string `short:"o" help:"Output directory; images land in <out>/og" default:"./dist"`
	Workers int    `short:"j" help:"Parallel renders (0 uses every CPU)" default:"0"`
}

func (gc *GenerateCmd) Run(g *Global, cli *CLI) error {
	cfg := cli.config(g)
	cfg.Workers = gc.Workers

	app := sitekit.New(cfg)
	defer func() { _ = app.Close() }()

	start := time.Now()
	n, err := app.Generate(context.Background(), gc.Output)
	var rerr *sitekit.RenderError
	if errors.As(err, &rerr) {
		for id, cause := range rerr.Failed {
			g.Logger.Error("Image not written", "id", id, "error", cause)
		}
	}
	if err != nil {
		return err
	}
	g.Logger.Info("Generation complete", "images", n, "output", gc.Output, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// PathsCmd implements the 'paths' command: one static path per published post.
type PathsCmd struct {
	URL bool `help:"Print absolute image URLs instead of paths"`
}

func (p *PathsCmd) Run(g *Global, cli *CLI) error {
	app := sitekit.New(cli.config(g))
	defer func() { _ = app.Close() }()

	posts, err := app.Posts(context.Background())
	if err != nil {
		return err
	}
	for _, post := range posts {
		if p.URL {
			fmt.Println(app.ImageURL(post.ID))
			continue
		}
		fmt.Println(sitekit.ImagePath(post.ID))
	}
	return nil
}

// SyncCmd implements the 'sync' command.
type SyncCmd struct{}

func (SyncCmd) Run(g *Global, cli *CLI) error {
	store, err := content.NewStore(cli.Database)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := store.Sync(context.Background(), content.NewDir(cli.ContentDir, content.WithLogger(g.Logger)))
	if err != nil {
		return err
	}
	g.Logger.Info("Collection synced", "entries", n, "from", cli.ContentDir, "db", cli.Database)
	return nil
}

// CheckConfigCmd implements the 'check-config' command.
type CheckConfigCmd struct{}

func (CheckConfigCmd) Run(g *Global, cli *CLI) error {
	if cli.SiteConfig == "" {
		return fmt.Errorf("--site-config is required")
	}
	cfg, err := siteconfig.Load(cli.SiteConfig)
	if err != nil {
		return err
	}
	b := cfg.Brand()
	fmt.Fprintf(os.Stdout, "%s: ok (brand %q, %s)\n", cli.SiteConfig, b.Name, b.Domain)
	return nil
}
