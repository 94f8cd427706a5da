package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Makepad-fr/todolist/internal/model"
)

// DateLayout is used for every timestamp the table shows.
const DateLayout = "2006/01/02 15:04:05"

// Table renders todos as a read-only Task / Done / Created at grid with the
// heading above and the refresh time below.
func Table(heading string, todos []model.Todo, updatedAt time.Time) string {
	t := Current()
	rows := make([][]string, 0, len(todos))
	for _, td := range todos {
		done := ""
		if td.Completed {
			done = "x"
		}
		rows = append(rows, []string{td.Text, done, td.Created().Format(DateLayout)})
	}

	grid := table.New().
		Border(t.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.BorderColor)).
		Headers("Task", "Done", "Created at").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Align(lipgloss.Center)
			}
			if col == 1 {
				return s.Align(lipgloss.Center)
			}
			return s
		})

	footer := t.Muted.Render("Updated at: " + updatedAt.Format(DateLayout))
	return lipgloss.JoinVertical(lipgloss.Left, t.Title.Render(heading), grid.Render(), footer)
}
