package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tripplan/internal/cli/formatter"
	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/service"
	"github.com/alexanderramin/tripplan/internal/tasklist"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type browseMode int

const (
	browseList browseMode = iota
	browseSearch
	browseConfirmDelete
	browseDetail
)

// tasksLoadedMsg carries a fresh copy of the stored tasks.
type tasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

// taskChangedMsg reports a finished mutation; the list reloads after it.
type taskChangedMsg struct {
	status string
	err    error
}

type browseKeyMap struct {
	Up, Down, Search, Open, Toggle, Delete, Reload, Clear, Quit key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Toggle: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle done")),
		Delete: key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "delete")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.Open, k.Toggle, k.Delete, k.Reload, k.Quit}
}

// browseModel is the interactive task list: a live-filtered view over the
// stored tasks with toggle, delete and detail actions.
type browseModel struct {
	ctx    context.Context
	tasks  service.TaskService
	list   *tasklist.List
	search textinput.Model
	keys   browseKeyMap

	mode    browseMode
	cursor  int
	offset  int
	pending domain.Task
	status  string
	err     error
	height  int
}

func newBrowseModel(ctx context.Context, tasks service.TaskService) *browseModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "title, category or date"
	ti.CharLimit = 80

	m := &browseModel{
		ctx:    ctx,
		tasks:  tasks,
		search: ti,
		keys:   defaultBrowseKeys(),
	}
	m.list = tasklist.New(tasklist.RedrawFunc(m.clampCursor))
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return m.load()
}

func (m *browseModel) load() tea.Cmd {
	svc, ctx := m.tasks, m.ctx
	return func() tea.Msg {
		tasks, err := svc.List(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m *browseModel) clampCursor() {
	n := m.list.Count()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.search.Width = max(msg.Width-10, 10)
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		selected, selErr := m.list.ItemAt(m.cursor)
		m.list.ReplaceAndFilter(msg.tasks)
		// Follow the selected task if a reload moved it.
		if selErr == nil {
			if idx, ok := m.list.IndexOfID(selected.ID); ok {
				m.cursor = idx
			}
		}
		return m, nil

	case taskChangedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = msg.status
		}
		return m, m.load()

	case tea.KeyMsg:
		switch m.mode {
		case browseSearch:
			return m.updateSearch(msg)
		case browseConfirmDelete:
			return m.updateConfirm(msg)
		case browseDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.list.Count()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = browseSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Clear):
		if m.list.Query() != "" {
			m.search.SetValue("")
			m.list.Filter("")
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Open):
		if _, err := m.list.ItemAt(m.cursor); err == nil {
			m.mode = browseDetail
		}
	case key.Matches(msg, m.keys.Toggle):
		task, err := m.list.ItemAt(m.cursor)
		if err != nil {
			return m, nil
		}
		return m, m.toggle(task)
	case key.Matches(msg, m.keys.Delete):
		task, err := m.list.ItemAt(m.cursor)
		if err != nil {
			return m, nil
		}
		m.pending = task
		m.mode = browseConfirmDelete
	}
	return m, nil
}

func (m *browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.search.SetValue("")
		m.search.Blur()
		m.list.Filter("")
		m.mode = browseList
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = browseList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.list.Filter(m.search.Value())
	return m, cmd
}

func (m *browseModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = browseList
		return m, m.remove(m.pending)
	case "n", "N", "esc":
		m.mode = browseList
		m.status = "Delete cancelled"
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		task, err := m.list.ItemAt(m.cursor)
		if err != nil {
			return m, nil
		}
		return m, m.toggle(task)
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case msg.Type == tea.KeyEsc, msg.Type == tea.KeyEnter, msg.String() == "q":
		m.mode = browseList
		return m, m.load()
	}
	return m, nil
}

func (m *browseModel) toggle(task domain.Task) tea.Cmd {
	svc, ctx := m.tasks, m.ctx
	return func() tea.Msg {
		updated, err := svc.ToggleDone(ctx, task.ID)
		if err != nil {
			return taskChangedMsg{err: err}
		}
		state := "not done"
		if updated.Done {
			state = "done"
		}
		return taskChangedMsg{status: fmt.Sprintf("#%d marked %s", updated.ID, state)}
	}
}

// remove deletes by id, captured when the row was chosen, so a reload or
// refilter between choosing and confirming cannot retarget the delete.
func (m *browseModel) remove(task domain.Task) tea.Cmd {
	svc, ctx := m.tasks, m.ctx
	return func() tea.Msg {
		if err := svc.Delete(ctx, task.ID); err != nil {
			return taskChangedMsg{err: err}
		}
		return taskChangedMsg{status: "Deleted: " + task.Title}
	}
}

func (m *browseModel) View() string {
	if m.mode == browseDetail {
		task, err := m.list.ItemAt(m.cursor)
		if err == nil {
			return formatter.FormatTaskDetail(task) + "\n" +
				formatter.Dim("space toggle done • esc back")
		}
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Trip tasks") + "\n")
	if m.mode == browseSearch || m.list.Query() != "" {
		b.WriteString(m.search.View() + "\n")
	}
	b.WriteString("\n")

	if m.list.Count() == 0 {
		if len(m.list.Full()) > 0 {
			b.WriteString(formatter.Dim("No tasks match.") + "\n")
		} else {
			b.WriteString(formatter.Dim("No tasks yet. Add one with `tripplan add`.") + "\n")
		}
	}

	items := m.list.Items()
	first, last := m.window(len(items))
	for i := first; i < last; i++ {
		b.WriteString(m.renderRow(i, items[i]) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.mode == browseConfirmDelete:
		b.WriteString(formatter.StyleRed.Render(fmt.Sprintf("Delete #%d %q? (y/n)", m.pending.ID, m.pending.Title)) + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(formatter.StyleGreen.Render(m.status) + "\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

// window returns the visible row range, keeping the cursor on screen.
func (m *browseModel) window(n int) (int, int) {
	rows := n
	if m.height > 0 {
		rows = max(m.height-8, 3)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	return m.offset, min(n, m.offset+rows)
}

func (m *browseModel) renderRow(i int, t domain.Task) string {
	pointer := "  "
	title := t.Title
	if i == m.cursor {
		pointer = formatter.StyleHeader.Render("› ")
		title = formatter.Bold(title)
	} else if t.Done {
		title = formatter.Dim(title)
	}
	return fmt.Sprintf("%s%s %s %s  %s  %s  %s",
		pointer,
		formatter.DoneBox(t.Done),
		formatter.ImportantMarker(t.Important),
		title,
		formatter.CategoryBadge(t.Category),
		formatter.Dim(t.Date),
		formatter.FormatBudget(t.Budget),
	)
}

func (m *browseModel) helpLine() string {
	if m.mode == browseSearch {
		return formatter.Dim("type to filter • enter keep • esc clear")
	}
	parts := make([]string, 0, len(m.keys.shortHelp()))
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " • "))
}

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and search tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app)
		},
	}
}

func runBrowse(cmd *cobra.Command, app *App) error {
	return app.runProgram(newBrowseModel(cmd.Context(), app.Tasks))
}
