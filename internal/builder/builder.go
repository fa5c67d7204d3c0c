// Package builder runs the full build: clean, load, render, write, assets.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdsite/internal/assets"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/loader"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/materialize"
	"git.home.luguber.info/inful/mdsite/internal/render"
	"git.home.luguber.info/inful/mdsite/internal/sitetree"
	"git.home.luguber.info/inful/mdsite/internal/workspace"
)

// Builder orchestrates the phases of one site build. The build is
// single-pass and strictly sequential; the first fatal error aborts it.
type Builder struct {
	cfg      config.Config
	renderer *render.Renderer
}

// New creates a Builder for the given configuration.
func New(cfg config.Config) *Builder {
	return &Builder{cfg: cfg, renderer: render.New()}
}

// Run executes one full build. Each run gets its own run id for log
// correlation. The context is consulted between phases; a phase itself runs
// to completion (all phases are bounded filesystem work).
func (b *Builder) Run(ctx context.Context) error {
	log := slog.With(logfields.RunID(uuid.NewString()))
	start := time.Now()

	log.Info("cleaning output directory", logfields.Phase("clean"), logfields.Path(b.cfg.OutDir))
	ws := workspace.NewManager(b.cfg.OutDir)
	if err := ws.Clean(); err != nil {
		return fmt.Errorf("clean phase: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("loading source tree", logfields.Phase("load"), logfields.Path(b.cfg.SourceDir))
	root, err := loader.Load(b.cfg.SourceDir, b.cfg.RootTitle)
	if err != nil {
		return fmt.Errorf("load phase: %w", err)
	}
	log.Info("source tree loaded", logfields.Phase("load"), logfields.Count(sitetree.Count(root)))
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("rendering site", logfields.Phase("render"))
	rendered, err := b.renderer.Render(root)
	if err != nil {
		return fmt.Errorf("render phase: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("writing site", logfields.Phase("write"), logfields.Path(b.cfg.OutDir))
	if err := materialize.Write(rendered, b.cfg.OutDir); err != nil {
		return fmt.Errorf("write phase: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := b.copyAssets(log); err != nil {
		return fmt.Errorf("assets phase: %w", err)
	}

	log.Info("build complete", logfields.Phase("done"), logfields.DurationMS(time.Since(start)))
	return nil
}

// copyAssets mirrors the assets directory into the output root. A missing
// assets directory is skipped: a content-only site is valid.
func (b *Builder) copyAssets(log *slog.Logger) error {
	if b.cfg.AssetsDir == "" {
		return nil
	}
	if _, err := os.Stat(b.cfg.AssetsDir); errors.Is(err, fs.ErrNotExist) {
		log.Info("no assets directory, skipping", logfields.Phase("assets"), logfields.Path(b.cfg.AssetsDir))
		return nil
	}
	log.Info("copying assets", logfields.Phase("assets"), logfields.Path(b.cfg.AssetsDir))
	return assets.CopyTree(b.cfg.AssetsDir, b.cfg.OutDir)
}
