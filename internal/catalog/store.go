package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/joestump/api-docs/internal/metrics"
)

// ErrNotLoaded is returned by Store.Current before any load has succeeded.
var ErrNotLoaded = errors.New("catalog not loaded")

// Store owns the current catalog snapshot. Readers never lock: the snapshot
// is swapped atomically and never mutated.
type Store struct {
	source string
	client *http.Client
	logger *log.Logger

	current atomic.Pointer[Catalog]

	mu       sync.Mutex
	lastErr  error
	loadedAt time.Time
}

// NewStore returns a store reading from source, a file path or http(s) URL.
// Nothing is loaded until Reload is called.
func NewStore(source string, client *http.Client, logger *log.Logger) *Store {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{source: source, client: client, logger: logger}
}

// Source returns the configured catalog location.
func (s *Store) Source() string { return s.source }

// Reload reads the source again and swaps in the new snapshot. On failure the
// previous snapshot, if any, stays current and the error is recorded.
func (s *Store) Reload(ctx context.Context) error {
	var (
		c   *Catalog
		err error
	)
	if IsRemote(s.source) {
		c, err = Fetch(ctx, s.client, s.source)
	} else {
		c, err = LoadFile(s.source)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		metrics.CatalogLoadsTotal.WithLabelValues("error").Inc()
		s.logger.Error("catalog load failed", "source", s.source, "err", err)
		return err
	}

	s.current.Store(c)
	s.lastErr = nil
	s.loadedAt = time.Now()
	metrics.CatalogLoadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogEndpoints.Set(float64(c.TotalEndpoints))
	if c.DeclaredTotal != 0 && c.DeclaredTotal != c.TotalEndpoints {
		s.logger.Warn("declared endpoint total differs from decoded endpoints",
			"declared", c.DeclaredTotal, "decoded", c.TotalEndpoints)
	}
	s.logger.Info("catalog loaded", "source", s.source,
		"categories", len(c.Categories), "endpoints", c.TotalEndpoints)
	return nil
}

// Set replaces the snapshot directly. Used by tests and by commands that
// decode the catalog themselves.
func (s *Store) Set(c *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Store(c)
	s.lastErr = nil
	s.loadedAt = time.Now()
}

// Current returns the current snapshot, or ErrNotLoaded wrapping the last
// load error when nothing has loaded yet.
func (s *Store) Current() (*Catalog, error) {
	if c := s.current.Load(); c != nil {
		return c, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotLoaded, s.lastErr)
	}
	return nil, ErrNotLoaded
}

// Err returns the error of the most recent load attempt, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LoadedAt returns when the current snapshot was installed.
func (s *Store) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

// Watch reloads the catalog whenever its file changes, until ctx is done.
// Remote sources cannot be watched and return immediately.
func (s *Store) Watch(ctx context.Context) error {
	if IsRemote(s.source) {
		s.logger.Warn("catalog watch ignored for remote source", "source", s.source)
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files by rename, so watch the directory.
	abs, err := filepath.Abs(s.source)
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	s.logger.Info("watching catalog", "path", abs)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("catalog changed", "op", event.Op.String())
				_ = s.Reload(ctx)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("catalog watcher", "err", err)
		}
	}
}
