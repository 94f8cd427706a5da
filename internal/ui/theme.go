package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done                                          lipgloss.Style // completed todo text
	Selected                                      lipgloss.Style
	BoxUnchecked, BoxChecked                      string
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
	SymDone, SymPending                           string
}

var current = themeFor("classic")

// SetTheme switches the current theme; unknown names select classic.
func SetTheme(name string) { current = themeFor(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func themeFor(name string) Theme {
	plain := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        plain.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("14")),
			Success:      plain.Foreground(lipgloss.Color("10")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("11")),
			Done:         plain.Faint(true).Strikethrough(true),
			Selected:     plain.Bold(true).Foreground(lipgloss.Color("13")),
			BoxUnchecked: "◻", BoxChecked: "◼",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymDone:     "✔", SymPending: "•",
		}
	case "mono":
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			Done:         plain,
			Selected:     plain.Reverse(true),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
			SymDone:     "x", SymPending: "-",
		}
	default: // classic
		return Theme{
			Name:         "classic",
			Title:        plain.Bold(true),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("12")),
			Success:      plain.Foreground(lipgloss.Color("42")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("214")),
			Done:         plain.Faint(true).Strikethrough(true),
			Selected:     plain.Bold(true).Reverse(true),
			BoxUnchecked: "☐", BoxChecked: "☑",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
			SymDone:     "✔", SymPending: "•",
		}
	}
}
