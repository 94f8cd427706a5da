package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/config"
	"github.com/Makepad-fr/todolist/internal/kv"
	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/todo"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// session is what every subcommand works with: the resolved config, an
// opened backend and a store restored from cfg.StorageKey.
type session struct {
	cfg     *config.Config
	backend kv.Handle
	store   *todo.Store
	log     zerolog.Logger
	print   printer
}

// openSession resolves config (file, env, then flags), opens the backend
// and, when restore is set, loads the list for the storage key.
func openSession(cmd *cobra.Command, opts *RootOptions, restore bool) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: "config", Err: err}
	}
	applyFlags(cfg, opts)
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: "config", Err: err}
	}

	ui.SetTheme(cfg.Theme)
	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	backend, err := kv.Open(cmd.Context(), kv.Config{
		Backend: cfg.Backend,
		DataDir: cfg.DataDir,
		DBPath:  cfg.DBPath,
		Logger:  log,
	})
	if err != nil {
		return nil, wrap("open storage", err)
	}
	log.Debug().Str("backend", cfg.Backend).Str("key", cfg.StorageKey).Msg("storage opened")

	s := &session{
		cfg:     cfg,
		backend: backend,
		store:   todo.New(backend, todo.WithLogger(log)),
		log:     log,
		print:   printer{json: opts.Format == "json", out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()},
	}
	if restore {
		if err := s.store.Restore(cmd.Context(), cfg.StorageKey); err != nil {
			_ = backend.Close()
			return nil, wrap("load", err)
		}
	}
	return s, nil
}

// applyFlags overrides cfg with the storage flags that were set.
func applyFlags(cfg *config.Config, opts *RootOptions) {
	for _, o := range []struct {
		flag  string
		field *string
	}{
		{opts.Key, &cfg.StorageKey},
		{opts.Backend, &cfg.Backend},
		{opts.DataDir, &cfg.DataDir},
		{opts.DBPath, &cfg.DBPath},
	} {
		if o.flag != "" {
			*o.field = o.flag
		}
	}
}

func (s *session) save(cmd *cobra.Command) error {
	if err := s.store.Save(cmd.Context(), s.cfg.StorageKey); err != nil {
		return wrap("save", err)
	}
	return nil
}

func (s *session) close() {
	if err := s.backend.Close(); err != nil {
		s.log.Warn().Err(err).Msg("close storage")
	}
}

// watcher is implemented by backends that can report external writes.
type watcher interface {
	Watch(ctx context.Context, key string, fn func()) error
}
