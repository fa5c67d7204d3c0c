// Package preview serves the generated site locally and rebuilds it when
// the source or assets trees change.
package preview

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdsite/internal/builder"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/workspace"
)

// debounceWindow coalesces editor save bursts into a single rebuild.
const debounceWindow = 250 * time.Millisecond

// stagingSuffix names the sibling directory rebuilds are staged into
// before promotion.
const stagingSuffix = ".staging"

// Server runs an initial build, serves the output directory over HTTP and
// performs a full rebuild per change burst. Every rebuild goes into a
// staging directory and is only promoted over the served output when it
// succeeds, so a broken edit keeps the last good output on disk and the
// server running.
type Server struct {
	cfg  config.Config
	addr string

	mu       sync.Mutex
	listener net.Listener
}

// New creates a preview server listening on addr.
func New(cfg config.Config, addr string) *Server {
	return &Server{cfg: cfg, addr: addr}
}

// Addr returns the bound listen address once Run has started serving.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Run blocks until ctx is cancelled or startup fails. The initial build is
// fatal on error; later rebuilds only log.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	s.watchTrees(watcher)

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	httpServer := &http.Server{
		Handler:           http.FileServer(http.Dir(s.cfg.OutDir)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()
	slog.Info("preview server started", logfields.Addr(s.Addr()), logfields.Path(s.cfg.OutDir))

	err = s.watchLoop(ctx, watcher, serveErr)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("preview server shutdown", logfields.Error(shutdownErr))
	}
	return err
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, serveErr <-chan error) error {
	debounce := time.NewTimer(debounceWindow)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("preview server stopping")
			return nil

		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("change detected", logfields.Path(event.Name))
			debounce.Reset(debounceWindow)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))

		case <-debounce.C:
			slog.Info("rebuilding after change")
			if err := s.rebuild(ctx); err != nil {
				slog.Error("rebuild failed, keeping previous output", logfields.Error(err))
			}
			// New subdirectories need their own watches.
			s.watchTrees(watcher)
		}
	}
}

// rebuild runs a full build into the staging directory and promotes it over
// the served output only when the whole build succeeded.
func (s *Server) rebuild(ctx context.Context) error {
	stagingCfg := s.cfg
	stagingCfg.OutDir = s.cfg.OutDir + stagingSuffix

	stage := workspace.NewManager(stagingCfg.OutDir)
	if err := stage.Clean(); err != nil {
		return err
	}
	if err := builder.New(stagingCfg).Run(ctx); err != nil {
		if cleanErr := stage.Clean(); cleanErr != nil {
			slog.Warn("unable to discard staged output", logfields.Path(stage.Path()), logfields.Error(cleanErr))
		}
		return err
	}
	return workspace.NewManager(s.cfg.OutDir).Promote(stagingCfg.OutDir)
}

// watchTrees (re-)registers every directory under the source and assets
// trees. Adding an already-watched directory is a no-op, so this is safe to
// call after each rebuild.
func (s *Server) watchTrees(watcher *fsnotify.Watcher) {
	for _, root := range []string{s.cfg.SourceDir, s.cfg.AssetsDir} {
		if root == "" {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil //nolint:nilerr // unreadable subtrees are simply not watched
			}
			if addErr := watcher.Add(path); addErr != nil {
				slog.Warn("unable to watch directory", logfields.Path(path), logfields.Error(addErr))
			}
			return nil
		})
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("unable to walk watch tree", logfields.Path(root), logfields.Error(err))
		}
	}
}
