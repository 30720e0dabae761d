// Package preview serves a built site locally, rebuilding when source files
// change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/pagemill/internal/logfields"
)

// debounceWindow coalesces editor save bursts into one rebuild.
const debounceWindow = 250 * time.Millisecond

// BuildFunc runs one full site build.
type BuildFunc func(ctx context.Context) error

// buildStatus tracks the current build state for the status endpoint.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) snapshot() (err error, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.hasGoodBuild
}

// Server watches source directories and serves the build output.
type Server struct {
	outputDir string
	watchDirs []string
	build     BuildFunc
	addr      string
	metrics   http.Handler // optional /metrics handler
	status    *buildStatus
}

// NewServer creates a preview server. watchDirs entries that do not exist are
// skipped at watch setup.
func NewServer(addr, outputDir string, watchDirs []string, build BuildFunc) *Server {
	return &Server{
		outputDir: outputDir,
		watchDirs: watchDirs,
		build:     build,
		addr:      addr,
		status:    &buildStatus{},
	}
}

// WithMetricsHandler exposes the given handler at /metrics.
func (s *Server) WithMetricsHandler(h http.Handler) *Server {
	s.metrics = h
	return s
}

// Run performs an initial build, then serves and rebuilds until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		// First build failing is not fatal for preview; the operator sees the
		// error and fixes the source while the watcher keeps running.
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range s.watchDirs {
		if err := addRecursive(watcher, dir); err != nil {
			slog.Warn("Failed to watch directory", logfields.Path(dir), logfields.Error(err))
		}
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", slog.String("addr", s.addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	s.watchLoop(ctx, watcher)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown preview server: %w", err)
	}
	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// watchLoop blocks until ctx is done, triggering debounced rebuilds on
// filesystem events. Newly created directories are added to the watch set.
func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if isIgnoredEvent(event) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			slog.Debug("Source change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if pending {
				if !debounce.Stop() {
					<-debounce.C
				}
			}
			debounce.Reset(debounceWindow)
			pending = true
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		case <-debounce.C:
			pending = false
			if err := s.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (s *Server) rebuild(ctx context.Context) error {
	err := s.build(ctx)
	if err != nil {
		s.status.setError(err)
		return err
	}
	s.status.setSuccess()
	return nil
}

// handler builds the HTTP mux: site root, health, optional metrics.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.outputDir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		err, good := s.status.snapshot()
		switch {
		case err != nil:
			http.Error(w, "last build failed: "+err.Error(), http.StatusInternalServerError)
		case !good:
			http.Error(w, "no successful build yet", http.StatusServiceUnavailable)
		default:
			_, _ = w.Write([]byte("ok\n"))
		}
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	return mux
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isIgnoredEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(event.Name)
	// Editor swap/backup files.
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp")
}
