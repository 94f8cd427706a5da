package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/tui"
)

func newTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit the list interactively (a add, space toggle, h hide done, s save, c clear)",
		Long: `Edit the list interactively.

Changes are kept in memory until saved with "s"; quitting without saving
leaves the stored list as it was.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.close()

			if err := tui.Run(cmd.Context(), s.store, s.cfg.StorageKey, s.cfg.Heading); err != nil {
				return wrap("tui", err)
			}
			return nil
		},
	}
}
