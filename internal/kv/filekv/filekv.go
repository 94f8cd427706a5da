// Package filekv stores each key as a JSON file in one directory.
// Single writer assumed; no locking, fine for a local single-user tool.
package filekv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const fileExt = ".json"

type Store struct {
	dir      string
	debounce time.Duration
	log      zerolog.Logger
}

type Option func(*Store)

// WithLogger sets the logger used for watcher diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// WithDebounce sets how long Watch waits for writes to settle.
func WithDebounce(d time.Duration) Option { return func(s *Store) { s.debounce = d } }

func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, debounce: 200 * time.Millisecond, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read file: %w", err)
	}
	return string(b), true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.Path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// Watch calls fn each time the file for key is created or written, after
// writes have been quiet for the debounce interval. It blocks until ctx is
// done.
func (s *Store) Watch(ctx context.Context, key string, fn func()) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	target := filepath.Clean(s.Path(key))
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			s.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("key file changed")
			settle = time.After(s.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Str("dir", s.dir).Msg("watch error")
		case <-settle:
			settle = nil
			fn()
		}
	}
}
