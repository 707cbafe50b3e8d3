package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/view"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// zoomStep is the zoom change of one +/- key press, in percent.
const zoomStep = 10

// chromeLines is how many rows the header, filter and help lines take.
const chromeLines = 7

type tuiKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Clear   key.Binding
	Search  key.Binding
	Mode    key.Binding
	Status  key.Binding
	Reset   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Ensure  key.Binding
	Why     key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultTUIKeys() tuiKeyMap {
	return tuiKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Mode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Status:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Ensure:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "ensure record")),
		Why:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "why")),
		Reload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) help() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Search, k.Mode, k.Status, k.Reset, k.ZoomIn, k.ZoomOut, k.Ensure, k.Why, k.Quit}
}

// statusesLoadedMsg reports the end of a status load.
type statusesLoadedMsg struct{ err error }

// ensureDoneMsg reports the end of an EnsureRecord call.
type ensureDoneMsg struct {
	nodeID  string
	outcome service.EnsureOutcome
	err     error
}

// roadmapModel is the interactive roadmap viewer: a navigable section tree
// with the filter, selection and zoom controls of the session.
type roadmapModel struct {
	ctx     context.Context
	svc     service.RoadmapService
	project *domain.Project
	label   string
	now     func() time.Time
	keys    tuiKeyMap

	search    textinput.Model
	searching bool

	cursor   int
	showWhy  bool
	loading  bool
	message  string
	width    int
	height   int
	quitting bool
}

func newRoadmapModel(ctx context.Context, s *session, now func() time.Time) roadmapModel {
	ti := textinput.New()
	ti.Prompt = formatter.StyleYellow.Render("/") + " "
	ti.Placeholder = "search labels"
	ti.CharLimit = 80
	ti.Cursor.SetMode(cursor.CursorStatic)

	return roadmapModel{
		ctx:     ctx,
		svc:     s.svc,
		project: s.project,
		label:   s.projectLabel(),
		now:     now,
		keys:    defaultTUIKeys(),
		search:  ti,
	}
}

func (m roadmapModel) Init() tea.Cmd {
	return nil
}

// loadStatuses reloads the active project's statuses.
func (m roadmapModel) loadStatuses() tea.Cmd {
	if m.project == nil {
		return nil
	}
	ctx, svc, id := m.ctx, m.svc, m.project.ID
	return func() tea.Msg {
		return statusesLoadedMsg{err: svc.SelectProject(ctx, id)}
	}
}

func (m roadmapModel) ensure(nodeID string) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		outcome, err := svc.EnsureRecord(ctx)
		return ensureDoneMsg{nodeID: nodeID, outcome: outcome, err: err}
	}
}

func (m roadmapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(msg.Width-4, 10)
		return m, nil

	case statusesLoadedMsg:
		m.loading = false
		m.message = ""
		if msg.err != nil {
			m.message = formatter.StyleRed.Render(msg.err.Error())
		}
		m.clampCursor()
		return m, nil

	case ensureDoneMsg:
		code, _ := m.svc.Template().SectionCode(msg.nodeID)
		if msg.err != nil {
			m.message = formatter.StyleRed.Render(msg.err.Error())
		} else {
			m.message = ensureMessage(msg.outcome, code)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m roadmapModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.svc.SetSearch(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m roadmapModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		id := m.cursorID()
		switch {
		case id == "":
		case m.svc.View().Selected == id:
			m.svc.ClearSelection()
		default:
			_ = m.svc.SelectNode(id)
		}
	case key.Matches(msg, m.keys.Clear):
		m.svc.ClearSelection()
		m.showWhy = false

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		m.svc.SetMode(nextMode(m.svc.View().Filter.Mode))
		m.clampCursor()
	case key.Matches(msg, m.keys.Status):
		m.svc.SetStatusFilter(nextStatusFilter(m.svc.View().Filter.Status))
		m.clampCursor()
	case key.Matches(msg, m.keys.Reset):
		m.svc.ResetFilters()
		m.search.SetValue("")
		m.showWhy = false
		m.clampCursor()

	case key.Matches(msg, m.keys.ZoomIn):
		m.svc.SetZoom(m.svc.View().Zoom + zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.svc.SetZoom(m.svc.View().Zoom - zoomStep)

	case key.Matches(msg, m.keys.Why):
		m.showWhy = !m.showWhy

	case key.Matches(msg, m.keys.Ensure):
		id := m.cursorID()
		if id == "" {
			return m, nil
		}
		if m.project == nil {
			m.message = formatter.StyleYellow.Render("Select a project (--project) to create records.")
			return m, nil
		}
		_ = m.svc.SelectNode(id)
		return m, m.ensure(id)

	case key.Matches(msg, m.keys.Reload):
		if m.project == nil {
			return m, nil
		}
		m.loading = true
		return m, m.loadStatuses()
	}
	return m, nil
}

func nextMode(cur view.Mode) view.Mode {
	for i, mode := range view.Modes {
		if mode == cur {
			return view.Modes[(i+1)%len(view.Modes)]
		}
	}
	return view.ModeAll
}

// nextStatusFilter cycles any → each presentation status → any.
func nextStatusFilter(cur view.StatusFilter) view.StatusFilter {
	if cur == "" || cur == view.StatusAny {
		return view.StatusFilter(domain.Statuses[0])
	}
	for i, s := range domain.Statuses {
		if view.StatusFilter(s) == cur && i+1 < len(domain.Statuses) {
			return view.StatusFilter(domain.Statuses[i+1])
		}
	}
	return view.StatusAny
}

func (m roadmapModel) items() []formatter.TreeItem {
	return formatter.RoadmapTreeItems(m.svc)
}

func (m roadmapModel) cursorID() string {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return ""
	}
	return items[m.cursor].ID
}

func (m *roadmapModel) clampCursor() {
	n := len(m.items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m roadmapModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Document roadmap") + "\n")
	status := formatter.RoadmapStatusLine(m.svc, m.label)
	if m.loading {
		status += formatter.Dim(" · ") + formatter.StyleYellow.Render("reloading…")
	}
	b.WriteString(status + "\n")
	if line := formatter.FilterLine(m.svc.View()); line != "" {
		b.WriteString(line + "\n")
	}
	if m.searching {
		b.WriteString(m.search.View() + "\n")
	}
	b.WriteString("\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(formatter.Dim("  No nodes match the current filters.") + "\n")
	} else {
		b.WriteString(m.renderTree(items))
	}

	if m.showWhy {
		if id := m.cursorID(); id != "" {
			if report, err := m.svc.Explain(id); err == nil {
				b.WriteString("\n" + formatter.FormatWhy(report, m.now()) + "\n")
			}
		}
	}
	if m.message != "" {
		b.WriteString("\n" + m.message + "\n")
	}
	b.WriteString("\n" + m.helpLine())
	return b.String()
}

// renderTree draws the tree with a cursor, scrolled to keep the cursor in
// view when the terminal is shorter than the tree.
func (m roadmapModel) renderTree(items []formatter.TreeItem) string {
	lines := strings.Split(strings.TrimRight(formatter.RenderTree(items), "\n"), "\n")
	for i := range lines {
		if i == m.cursor {
			lines[i] = formatter.StyleHeader.Render("›") + lines[i]
		} else {
			lines[i] = " " + lines[i]
		}
	}

	rows := len(lines)
	if m.height > 0 {
		rows = max(m.height-chromeLines, 3)
	}
	start := 0
	if len(lines) > rows {
		start = min(max(m.cursor-rows/2, 0), len(lines)-rows)
		lines = lines[start : start+rows]
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m roadmapModel) helpLine() string {
	var parts []string
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + formatter.Dim(strings.Join(parts, " · "))
}
