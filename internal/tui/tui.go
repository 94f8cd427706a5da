// Package tui is the interactive todo list: add, toggle, hide completed,
// save and clear, all through a todo.Store.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/todo"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// listItem adapts a todo to bubbles/list.Item
type listItem struct{ todo model.Todo }

func (i listItem) Title() string       { return i.todo.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Text }

// itemDelegate renders one todo per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box, text := t.Muted.Render(t.BoxUnchecked), it.todo.Text
	if it.todo.Completed {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

var (
	addKey   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	spaceKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	hideKey  = key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide completed"))
	saveKey  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save"))
	clearKey = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear"))
)

// Model is the Bubble Tea model for the list view.
type Model struct {
	ctx     context.Context
	store   *todo.Store
	key     string
	heading string

	list  list.Model
	input textinput.Model

	adding          bool
	confirmingClear bool
	hideCompleted   bool
	dirty           bool // changed since the last save
	status          string
	err             error
}

// New builds the view over an already restored store. key is where "save"
// writes.
func New(ctx context.Context, store *todo.Store, storageKey, heading string) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	extra := func() []key.Binding { return []key.Binding{addKey, spaceKey, hideKey, saveKey, clearKey} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "please input task."

	m := Model{
		ctx:     ctx,
		store:   store,
		key:     storageKey,
		heading: heading,
		list:    l,
		input:   ti,
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, store *todo.Store, storageKey, heading string) error {
	p := tea.NewProgram(New(ctx, store, storageKey, heading), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// refresh rebuilds list items and the header from the store.
func (m *Model) refresh() {
	todos := m.store.Visible(m.hideCompleted)
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, listItem{todo: t})
	}
	m.list.SetItems(items)

	t := ui.Current()
	done, pending := m.store.Stats()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.heading,
		t.SymDone, done,
		t.SymPending, pending,
		"Total", m.store.Len(),
	)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 4
		if m.adding || m.confirmingClear {
			h -= 2
		}
		m.list.SetSize(msg.Width-4, h)
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		if m.confirmingClear {
			return m.updateConfirm(msg), nil
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		return m.updateNormal(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.input.Value() == "" {
			return m, nil
		}
		m.store.Create(m.input.Value())
		m.dirty = true
		m.status = "added"
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		m.refresh()
		return m, nil
	case "esc":
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	m.confirmingClear = false
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		m.store.Clear()
		m.dirty = true
		m.status = "cleared"
		m.refresh()
	default:
		m.status = "clear cancelled"
	}
	return m
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "a":
		m.adding = true
		m.status = ""
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case " ":
		if it, ok := m.list.SelectedItem().(listItem); ok {
			m.store.Toggle(it.todo.ID)
			m.dirty = true
			m.refresh()
		}
		return m, nil
	case "h":
		m.hideCompleted = !m.hideCompleted
		m.refresh()
		return m, nil
	case "s":
		if err := m.store.Save(m.ctx, m.key); err != nil {
			m.err = err
			return m, nil
		}
		m.dirty = false
		m.status = "saved"
		return m, nil
	case "c":
		if m.store.Len() == 0 {
			return m, nil
		}
		m.confirmingClear = true
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()

	box := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
	switch {
	case m.adding:
		content += "\n" + box.Render("Add new todo\n"+m.input.View())
	case m.confirmingClear:
		content += "\n" + box.Render(t.Error.Render("Clear every todo?")+" (y/n)")
	}

	var footer []string
	if m.hideCompleted {
		footer = append(footer, t.Muted.Render("completed hidden"))
	}
	if m.dirty {
		footer = append(footer, t.Pending.Render("unsaved changes"))
	}
	if m.status != "" {
		footer = append(footer, t.Success.Render(m.status))
	}
	if m.err != nil {
		footer = append(footer, t.Error.Render(m.err.Error()))
	}
	if len(footer) > 0 {
		content += "\n" + strings.Join(footer, "  ")
	}
	return ui.Panel([]string{content})
}
