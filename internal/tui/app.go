package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeAdd
)

type boardModel struct {
	b *board.Board

	width  int
	height int

	tasks  []model.Task
	cursor int
	offset int

	mode  inputMode
	input textinput.Model

	// searchBefore is restored when a search is cancelled.
	searchBefore string

	flash string
}

func newBoardModel(b *board.Board) boardModel {
	m := boardModel{b: b, width: 80, height: 24}

	m.input = textinput.New()
	m.input.CharLimit = 200
	m.input.Width = 40

	m.refresh()
	return m
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) refresh() {
	m.tasks = m.b.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

func (m *boardModel) clampOffset() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m boardModel) current() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Leave room on the input bar for its right-hand hint.
		m.input.Width = max(10, m.width-40)
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m boardModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		m.clampOffset()
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampOffset()
	case "g", "home":
		m.cursor = 0
		m.clampOffset()
	case "G", "end":
		m.cursor = max(0, len(m.tasks)-1)
		m.clampOffset()

	case " ", "space", "enter":
		if t, ok := m.current(); ok {
			if nt, ok := m.b.AdvanceStatus(t.ID); ok {
				m.flash = nt.Title + ": " + string(nt.Status)
			}
			m.refresh()
		}
	case "x", "delete":
		if t, ok := m.current(); ok {
			if m.b.DeleteTask(t.ID) {
				m.flash = "deleted: " + t.Title
			}
			m.refresh()
		}
	case "K", "shift+up":
		m.moveCurrent(-1)
	case "J", "shift+down":
		m.moveCurrent(1)

	case "tab":
		m.cycleProject(1)
	case "shift+tab":
		m.cycleProject(-1)
	case "s":
		f := m.b.Filters()
		f.Status = cycle(statusOptions(), f.Status)
		m.b.SetFilters(f)
		m.refresh()
	case "p":
		f := m.b.Filters()
		f.Priority = cycle(priorityOptions(), f.Priority)
		m.b.SetFilters(f)
		m.refresh()
	case "c":
		f := model.DefaultFilters()
		f.ProjectID = m.b.SelectedProjectID()
		m.b.SetFilters(f)
		m.refresh()

	case "/":
		m.mode = modeSearch
		m.searchBefore = m.b.Filters().Search
		m.input.Prompt = "search: "
		m.input.Placeholder = "title or description"
		m.input.SetValue(m.searchBefore)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "a":
		m.mode = modeAdd
		m.input.Prompt = "new task: "
		m.input.Placeholder = "Title"
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == modeSearch {
			m.setSearch(m.searchBefore)
		}
		m.endInput()
		return m, nil
	case "enter":
		if m.mode == modeAdd {
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				m.flash = "title must not be empty"
				return m, nil
			}
			t := m.b.AddTask(model.TaskInput{
				Title:     title,
				ProjectID: m.newTaskProject(),
				Priority:  model.PriorityMedium,
				Status:    model.StatusTodo,
			})
			m.flash = "added: " + t.Title
		}
		m.endInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.setSearch(m.input.Value())
	}
	return m, cmd
}

func (m *boardModel) endInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
	m.refresh()
}

func (m *boardModel) setSearch(s string) {
	f := m.b.Filters()
	if f.Search == s {
		return
	}
	f.Search = s
	m.b.SetFilters(f)
	m.refresh()
}

// newTaskProject is the selected project, or the default project when the
// board shows all projects.
func (m boardModel) newTaskProject() string {
	if id := m.b.SelectedProjectID(); id != model.All {
		return id
	}
	return model.DefaultProjectID
}

func (m *boardModel) cycleProject(dir int) {
	ids := []string{model.All}
	for _, p := range m.b.Projects() {
		ids = append(ids, p.ID)
	}
	cur := 0
	for i, id := range ids {
		if id == m.b.SelectedProjectID() {
			cur = i
			break
		}
	}
	next := (cur + dir + len(ids)) % len(ids)
	m.b.SetSelectedProjectID(ids[next])
	m.cursor = 0
	m.refresh()
}

// moveCurrent swaps the current task with its neighbour in the visible list and
// keeps the cursor on it.
func (m *boardModel) moveCurrent(delta int) {
	t, ok := m.current()
	if !ok {
		return
	}
	j := m.cursor + delta
	if j < 0 || j >= len(m.tasks) {
		return
	}
	other := m.tasks[j]
	if other.Completed() != t.Completed() {
		return
	}
	ids := make([]string, 0, len(m.tasks))
	for i := range m.tasks {
		switch i {
		case m.cursor:
			ids = append(ids, other.ID)
		case j:
			ids = append(ids, t.ID)
		default:
			ids = append(ids, m.tasks[i].ID)
		}
	}
	m.b.ReorderByIDs(ids)
	m.cursor = j
	m.refresh()
}

func statusOptions() []string {
	out := []string{model.All}
	for _, s := range model.Statuses {
		out = append(out, string(s))
	}
	return out
}

func priorityOptions() []string {
	out := []string{model.All}
	for _, p := range model.Priorities {
		out = append(out, string(p))
	}
	return out
}

func cycle(opts []string, cur string) string {
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}
