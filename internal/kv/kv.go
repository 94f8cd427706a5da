// Package kv defines the key-value collaborator the todo store persists
// through, and opens one of the concrete backends by name.
package kv

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Makepad-fr/todolist/internal/kv/filekv"
	"github.com/Makepad-fr/todolist/internal/kv/memkv"
	"github.com/Makepad-fr/todolist/internal/kv/sqlitekv"
)

// Store is a plain string key-value service. Get reports ok=false when the
// key has never been written. No transactions, no TTL.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config selects and locates a backend.
type Config struct {
	Backend string
	DataDir string // file backend
	DBPath  string // sqlite backend
	Logger  zerolog.Logger
}

// Handle is an opened backend. Close releases files or connections.
type Handle interface {
	Store
	io.Closer
}

// Open returns the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Handle, error) {
	switch cfg.Backend {
	case BackendMemory:
		return memkv.New(), nil
	case BackendFile, "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("file backend: data dir is required")
		}
		return filekv.New(cfg.DataDir, filekv.WithLogger(cfg.Logger)), nil
	case BackendSQLite:
		s, err := sqlitekv.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("sqlite backend: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
