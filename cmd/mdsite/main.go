package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdsite/internal/builder"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/preview"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"mdsite.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Source    string `short:"s" help:"Source directory of markdown articles"`
		Assets    string `short:"a" help:"Static assets directory copied verbatim"`
		Out       string `short:"o" help:"Output directory for the generated site"`
		RootTitle string `help:"Display name for the root directory"`
	} `cmd:"" help:"Build the static site from the source tree"`

	Preview struct {
		Source    string `short:"s" help:"Source directory of markdown articles"`
		Assets    string `short:"a" help:"Static assets directory copied verbatim"`
		Out       string `short:"o" help:"Output directory for the generated site"`
		RootTitle string `help:"Display name for the root directory"`
		Addr      string `help:"Listen address for the preview server" default:":8080"`
	} `cmd:"" help:"Build the site, serve it locally and rebuild on changes"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch kctx.Command() {
	case "build":
		applyFlags(&cfg, CLI.Build.Source, CLI.Build.Assets, CLI.Build.Out, CLI.Build.RootTitle)
		if err := runBuild(ctx, cfg); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(1)
		}
	case "preview":
		applyFlags(&cfg, CLI.Preview.Source, CLI.Preview.Assets, CLI.Preview.Out, CLI.Preview.RootTitle)
		if err := runPreview(ctx, cfg, CLI.Preview.Addr); err != nil {
			slog.Error("Preview failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

// applyFlags lets command-line flags override the resolved configuration.
func applyFlags(cfg *config.Config, source, assets, out, rootTitle string) {
	if source != "" {
		cfg.SourceDir = source
	}
	if assets != "" {
		cfg.AssetsDir = assets
	}
	if out != "" {
		cfg.OutDir = out
	}
	if rootTitle != "" {
		cfg.RootTitle = rootTitle
	}
}

func runBuild(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.Info("Starting site build",
		logfields.Path(cfg.SourceDir),
		slog.String("output", cfg.OutDir),
		slog.String("root_title", cfg.RootTitle))
	return builder.New(cfg).Run(ctx)
}

func runPreview(ctx context.Context, cfg config.Config, addr string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.Info("Starting preview", logfields.Addr(addr), logfields.Path(cfg.SourceDir))
	return preview.New(cfg, addr).Run(ctx)
}
