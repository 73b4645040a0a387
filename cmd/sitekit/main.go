package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set at build time via ldflags.
var version = "dev"

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging" env:"SITEKIT_VERBOSE"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	ContentDir    string `name:"content-dir" help:"Markdown collection root" default:"src/content/blog" env:"SITEKIT_CONTENT_DIR"`
	ContentSource string `name:"source" help:"Content source (dir or sqlite)" enum:"dir,sqlite" default:"dir" env:"SITEKIT_CONTENT_SOURCE"`
	Database      string `name:"db" help:"SQLite database for the sqlite source" default:"data/content.db" env:"SITEKIT_DATABASE"`
	SiteConfig    string `name:"site-config" help:"Site configuration YAML (optional)" env:"SITEKIT_SITE_CONFIG"`
	Font          string `name:"font" help:"Font used for preview images" default:"public/fonts/atkinson-bold.ttf" env:"SITEKIT_FONT"`
	Width         int    `name:"width" help:"Preview image width in pixels" default:"1200" env:"SITEKIT_IMAGE_WIDTH"`

	Serve       ServeCmd       `cmd:"" help:"Serve preview images over HTTP"`
	Generate    GenerateCmd    `cmd:"" help:"Write a preview image for every published post"`
	Paths       PathsCmd       `cmd:"" help:"List the image path of every published post"`
	Sync        SyncCmd        `cmd:"" help:"Copy the markdown collection into the SQLite store"`
	CheckConfig CheckConfigCmd `cmd:"" name:"check-config" help:"Validate the site configuration"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}

	var cli CLI
	global := &Global{Logger: slog.Default()}
	ctx := kong.Parse(&cli,
		kong.Name("sitekit"),
		kong.Description("Open Graph preview images for a markdown blog."),
		kong.UsageOnError(),
		kong.Vars{"version": "sitekit " + version},
		kong.Bind(global),
	)
	if err := ctx.Run(&cli); err != nil {
		global.Logger.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
