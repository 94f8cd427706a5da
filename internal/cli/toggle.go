package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/todo"
	"github.com/Makepad-fr/todolist/internal/ui"
)

func newToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id|index>",
		Aliases: []string{"done"},
		Short:   "Toggle done for a todo, by id or 1-based index",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.close()

			id, ok := resolveID(s.store, args[0])
			if !ok {
				return usageError("no todo with id or index %q (have %d)", args[0], s.store.Len())
			}
			s.store.Toggle(id)
			if err := s.save(cmd); err != nil {
				return err
			}

			toggled, _ := s.store.Find(id)
			return s.print.result(toggled, func(w io.Writer) {
				state := "pending"
				if toggled.Completed {
					state = "done"
				}
				ui.OK(w, "toggled: "+toggled.Text+" is "+state)
			})
		},
	}
}

// resolveID accepts a todo id, or a 1-based position as printed by ls.
func resolveID(store *todo.Store, arg string) (string, bool) {
	if t, ok := store.Find(arg); ok {
		return t.ID, true
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > store.Len() {
		return "", false
	}
	return store.Todos()[n-1].ID, true
}
