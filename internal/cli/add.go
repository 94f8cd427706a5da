package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/ui"
)

func newAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo (text can be multiple words)",
		Example: `  todolist add "Buy milk"
  todolist add Buy milk`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.close()

			created := s.store.Create(strings.Join(args, " "))
			if err := s.save(cmd); err != nil {
				return err
			}
			return s.print.result(created, func(w io.Writer) {
				ui.OK(w, fmt.Sprintf("added %s", created.ID))
			})
		},
	}
}
