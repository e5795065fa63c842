// Package tui implements the interactive single-page todo UI.
//
// All mutations go through the store, which persists after every
// change. The edit state (which entry is being renamed) lives only in
// this model and never reaches disk.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aklinde/tick/internal/model"
	"github.com/aklinde/tick/internal/store"
	"github.com/aklinde/tick/internal/ui"
)

const emptyTitleMsg = "Title cannot be empty"

// listItem adapts a model.Todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders entries on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	th := ui.Current()

	box := th.Muted.Render(th.BoxUnchecked)
	title := it.todo.Title
	if it.todo.Completed {
		box = th.Success.Render(th.BoxChecked)
		title = th.Done.Render(title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = th.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+title)
}

// Model is the Bubble Tea model for the single-page UI.
type Model struct {
	store *store.Store
	list  list.Model

	// Inline add/edit. editingID holds the id of the entry being
	// renamed; empty means no edit in progress.
	input     textinput.Model
	adding    bool
	editingID string
	inputErr  string

	width, height int
}

// New builds the UI on top of an opened store.
func New(st *store.Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	th := ui.Current()
	l.Styles.Title = th.Title
	l.Styles.HelpStyle = th.Help
	l.Styles.PaginationStyle = th.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, toggleBind, delBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task title..."
	ti.CharLimit = 200

	m := Model{store: st, list: l, input: ti}
	m.setItems(st.Items())
	return m
}

// Run starts the full-screen program and blocks until it quits.
func Run(st *store.Store) error {
	p := tea.NewProgram(New(st), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	// Inline input mode captures every key.
	if m.adding || m.editingID != "" {
		var cmd tea.Cmd
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter":
				return m.submitInput()
			case "esc":
				m.closeInput()
				return m, nil
			}
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q":
			return m, tea.Quit

		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				return m, tea.Quit
			}
			// The list clears an applied filter.

		case " ":
			if id := m.selectedID(); id != "" {
				cmd := m.setItems(m.store.Toggle(id))
				return m, cmd
			}
			return m, nil

		case "d":
			if id := m.selectedID(); id != "" {
				cmd := m.setItems(m.store.Remove(id))
				return m, cmd
			}
			return m, nil

		case "a":
			m.adding = true
			m.input.SetValue("")
			m.input.Placeholder = "New task title..."
			m.input.Focus()
			m.resize()
			return m, nil

		case "e":
			if it, ok := m.list.SelectedItem().(listItem); ok {
				m.editingID = it.todo.ID
				m.input.SetValue(it.todo.Title)
				m.input.CursorEnd()
				m.input.Placeholder = "Edit task title..."
				m.input.Focus()
				m.resize()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// submitInput applies the pending add or rename. Invalid titles keep
// the input open with an inline message and change nothing.
func (m Model) submitInput() (Model, tea.Cmd) {
	title := m.input.Value()
	if !model.ValidTitle(title) {
		m.inputErr = emptyTitleMsg
		return m, nil
	}
	var cmd tea.Cmd
	if m.adding {
		cmd = m.setItems(m.store.Add(title))
	} else {
		cmd = m.setItems(m.store.Rename(m.editingID, title))
	}
	m.closeInput()
	return m, cmd
}

// closeInput leaves add/edit mode and clears the transient edit state.
func (m *Model) closeInput() {
	m.adding = false
	m.editingID = ""
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m Model) selectedID() string {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return ""
	}
	return it.todo.ID
}

// setItems replaces the rendered list from a store snapshot, keeping
// the cursor in range and refreshing the header counts. The returned
// command re-runs an applied filter over the new items and must reach
// the runtime, or the filtered view goes blank.
func (m *Model) setItems(items []model.Todo) tea.Cmd {
	sel := m.list.Index()
	li := make([]list.Item, 0, len(items))
	for _, t := range items {
		li = append(li, listItem{todo: t})
	}
	cmd := m.list.SetItems(li)
	if sel >= len(li) {
		sel = len(li) - 1
	}
	if sel < 0 {
		sel = 0
	}
	m.list.Select(sel)
	m.list.Title = headerLine(items)
	return cmd
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	h := m.height - 4
	if m.adding || m.editingID != "" {
		h = m.height - 8
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	th := ui.Current()

	content := m.list.View()
	if errMsg := m.store.Err(); errMsg != "" {
		content = th.Error.Render("! "+errMsg) + "\n" + content
	}
	if m.adding || m.editingID != "" {
		content = content + "\n" + m.inputBar()
	}
	return ui.Panel([]string{content})
}

func (m Model) inputBar() string {
	th := ui.Current()
	title := "Add new task"
	if m.editingID != "" {
		title = "Edit task"
	}
	if m.inputErr != "" {
		title += "  " + th.Error.Render(m.inputErr)
	}
	return th.Frame.Render(title + "\n" + m.input.View())
}

// headerLine renders the page header with live counts and progress.
func headerLine(items []model.Todo) string {
	th := ui.Current()
	done, pending := model.Stats(items)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), pending,
		th.Accent.Render("Total"), len(items),
		th.Muted.Render(ui.ProgressBar(done, len(items), 16)),
	)
}
