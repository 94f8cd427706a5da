package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/ui"
)

func newListCommand(opts *RootOptions) *cobra.Command {
	var hideCompleted, group bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.close()

			visible := s.store.Visible(hideCompleted)
			return s.print.result(visible, func(w io.Writer) {
				fmt.Fprintln(w, renderList(s.cfg.Heading, s.store.Todos(), hideCompleted, group))
			})
		},
	}
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "leave completed todos out")
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

// numbered is a todo with its 1-based position in the full list, so
// indexes stay valid for `toggle` even when some rows are hidden.
type numbered struct {
	n    int
	todo model.Todo
}

func renderList(heading string, todos []model.Todo, hideCompleted, group bool) string {
	t := ui.Current()

	var rows []numbered
	done, pending := 0, 0
	for i, td := range todos {
		if td.Completed {
			done++
		} else {
			pending++
		}
		if hideCompleted && td.Completed {
			continue
		}
		rows = append(rows, numbered{n: i + 1, todo: td})
	}

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(heading),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(todos),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(done, done+pending, 28)), ""}
	if group {
		lines = append(lines, groupLines(rows, hideCompleted)...)
	} else {
		lines = append(lines, flatLines(rows)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todolist add \"Buy milk\"`"))
	return ui.Panel(lines)
}

// maxTextWidth is the widest a todo's text is printed, in terminal cells.
const maxTextWidth = 80

func flatLines(rows []numbered) []string {
	t := ui.Current()
	if len(rows) == 0 {
		return []string{t.Muted.Render("no todos")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		idx := fmt.Sprintf("%2d.", r.n)
		box, style := t.Muted.Render(t.BoxUnchecked), t.Muted
		text := ansi.Truncate(r.todo.Text, maxTextWidth, "...")
		if r.todo.Completed {
			box = t.Success.Render(t.BoxChecked)
			text = t.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", style.Render(idx), box, text))
	}
	return out
}

func groupLines(rows []numbered, hideCompleted bool) []string {
	t := ui.Current()
	var pend, done []numbered
	for _, r := range rows {
		if r.todo.Completed {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	section := func(title string, rs []numbered) []string {
		lines := []string{t.Accent.Render(title)}
		if len(rs) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(rs)...)
	}

	lines := section("Pending", pend)
	if !hideCompleted {
		lines = append(lines, "")
		lines = append(lines, section("Done", done)...)
	}
	return lines
}
