package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/ui"
)

func newClearCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every todo from the list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.close()

			n := s.store.Len()
			if !yes && !confirm(bufio.NewScanner(cmd.InOrStdin()), cmd.ErrOrStderr(), fmt.Sprintf("Clear %d todos from %q? [y/N] ", n, s.cfg.StorageKey)) {
				return s.print.result(map[string]int{"cleared": 0}, func(w io.Writer) {
					fmt.Fprintln(w, ui.Current().Muted.Render("cancelled"))
				})
			}

			s.store.Clear()
			if err := s.save(cmd); err != nil {
				return err
			}
			return s.print.result(map[string]int{"cleared": n}, func(w io.Writer) {
				ui.OK(w, fmt.Sprintf("cleared %d", n))
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks prompt on w and reads the answer from the next line of in.
func confirm(in *bufio.Scanner, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)
	if !in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
