package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/ui"
)

func newTableCommand(opts *RootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show todos as a read-only table",
		Long: `Show todos as a read-only table with their creation time.

With --watch the table is printed again every time the list is saved by
another process. Only the file backend can be watched.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.close()

			render := func(w io.Writer) {
				fmt.Fprintln(w, ui.Table(s.cfg.Heading, s.store.Todos(), time.Now()))
			}
			if err := s.print.result(s.store.Todos(), render); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			w, ok := s.backend.(watcher)
			if !ok {
				return usageError("--watch needs the file backend, have %q", s.cfg.Backend)
			}
			key := s.cfg.StorageKey
			return w.Watch(cmd.Context(), key, func() {
				if err := s.store.Restore(cmd.Context(), key); err != nil {
					s.log.Warn().Err(err).Str("key", key).Msg("reload failed, keeping previous list")
					return
				}
				if err := s.print.result(s.store.Todos(), render); err != nil {
					s.log.Warn().Err(err).Msg("print")
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the list changes on disk")
	return cmd
}
