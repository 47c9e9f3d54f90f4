// Package tui renders the coaching summary page in a terminal.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stemsi/exstem-summary/internal/model"
	"github.com/stemsi/exstem-summary/internal/service"
	"github.com/stemsi/exstem-summary/internal/view"
)

// Loader is the part of service.Loader the screen needs.
type Loader interface {
	FetchCourses(ctx context.Context, store *service.CourseStore)
	FetchStudentCourses(ctx context.Context, store *service.CourseStore)
}

// fetchedMsg reports that one fetch settled for the page identified by gen.
type fetchedMsg struct {
	gen  int
	what string
}

// Model is the bubbletea model of the summary screen. Each (re)load opens
// a new page; results for an older page are ignored.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	loader Loader

	page    *view.Page
	store   *service.CourseStore
	gen     int
	pending int

	table  table.Model
	rowIDs []int
	status string
	width  int
	styles Styles
}

// New builds the screen with the page on the summary tab and both filters
// set to the given values.
func New(ctx context.Context, loader Loader, year model.YearFilter, sem model.SemFilter) (Model, error) {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := Model{
		loader: loader,
		table:  t,
		styles: DefaultStyles(),
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.openPage()

	if err := m.page.SetYearFilter(year); err != nil {
		return Model{}, err
	}
	if err := m.page.SetSemFilter(sem); err != nil {
		return Model{}, err
	}
	m.refreshTable()
	m.pending, m.status = 2, "Loading..."
	return m, nil
}

func columns(width int) []table.Column {
	desc := max(width-20-3*8-12, 12)
	return []table.Column{
		{Title: "Subject", Width: 20},
		{Title: "Description", Width: desc},
		{Title: "Passed", Width: 8},
		{Title: "Failed", Width: 8},
		{Title: "IP", Width: 8},
	}
}

// openPage replaces the page with a fresh one, keeping tab and filters.
func (m *Model) openPage() {
	prev := m.page
	m.store = service.NewCourseStore()
	m.page = view.NewPage(m.store)
	m.gen++
	if prev != nil {
		prev.Close()
		_ = m.page.SelectTab(prev.Tab())
		_ = m.page.SetYearFilter(prev.YearFilter())
		_ = m.page.SetSemFilter(prev.SemFilter())
	}
}

// Init issues both fetches independently.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// load returns the two fetch commands for the current page. Callers set
// pending before handing the commands to the runtime.
func (m Model) load() tea.Cmd {
	ctx, store, gen, loader := m.ctx, m.store, m.gen, m.loader
	return tea.Batch(
		func() tea.Msg {
			loader.FetchCourses(ctx, store)
			return fetchedMsg{gen: gen, what: "courses"}
		},
		func() tea.Msg {
			loader.FetchStudentCourses(ctx, store)
			return fetchedMsg{gen: gen, what: "student-course"}
		},
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width - 4))
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil

	case fetchedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.pending--
		if m.pending <= 0 {
			m.status = m.loadStatus()
		}
		m.refreshTable()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.page.Close()
			m.cancel()
			return m, tea.Quit
		case "tab":
			next := model.TabDetailed
			if m.page.Tab() == model.TabDetailed {
				next = model.TabSummary
			}
			_ = m.page.SelectTab(next)
			return m, nil
		case "1":
			_ = m.page.SelectTab(model.TabSummary)
			return m, nil
		case "2":
			_ = m.page.SelectTab(model.TabDetailed)
			return m, nil
		case "y":
			_ = m.page.SetYearFilter(model.YearFilter(nextOption(model.YearOptions, string(m.page.YearFilter()))))
			m.refreshTable()
			return m, nil
		case "s":
			_ = m.page.SetSemFilter(model.SemFilter(nextOption(model.SemOptions, string(m.page.SemFilter()))))
			m.refreshTable()
			return m, nil
		case "r":
			m.openPage()
			m.refreshTable()
			m.pending, m.status = 2, "Loading..."
			return m, m.load()
		case "enter":
			if m.page.Tab() == model.TabSummary {
				if id, ok := m.SelectedCourseID(); ok {
					m.status = "Open " + view.DetailPath(id)
				}
			}
			return m, nil
		}
	}

	if m.page.Tab() == model.TabSummary {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// SelectedCourseID returns the id of the highlighted row.
func (m Model) SelectedCourseID() (int, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rowIDs) {
		return 0, false
	}
	return m.rowIDs[i], true
}

// Page exposes the underlying page state.
func (m Model) Page() *view.Page { return m.page }

// Status is the current status line.
func (m Model) Status() string { return m.status }

func (m *Model) refreshTable() {
	rows := m.page.Rows()
	m.rowIDs = make([]int, 0, len(rows))
	trs := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		m.rowIDs = append(m.rowIDs, r.ID)
		trs = append(trs, table.Row{
			r.Subject,
			r.Description,
			strconv.Itoa(r.PassedCount),
			strconv.Itoa(r.FailedCount),
			strconv.Itoa(r.IPCount),
		})
	}
	m.table.SetRows(trs)
	// SetCursor on an empty table leaves the cursor at -1; pull it back
	// into range once rows exist again.
	if c := m.table.Cursor(); len(trs) > 0 && (c < 0 || c >= len(trs)) {
		m.table.SetCursor(min(max(c, 0), len(trs)-1))
	}
}

func (m Model) loadStatus() string {
	snap := m.page.Snapshot()
	var missing []string
	if !snap.CoursesLoaded {
		missing = append(missing, "courses")
	}
	if !snap.RecordsLoaded {
		missing = append(missing, "student-course")
	}
	if len(missing) > 0 {
		return "Could not load " + strings.Join(missing, ", ") + " (see log)"
	}
	return fmt.Sprintf("Loaded %d courses, %d records", len(snap.Courses), len(snap.Records))
}

// View renders the screen.
func (m Model) View() string {
	r := m.page.Render()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(r.Title))
	b.WriteString("\n")

	tabs := make([]string, 0, len(r.Tabs))
	for _, t := range r.Tabs {
		if t.Active {
			tabs = append(tabs, m.styles.ActiveTab.Render(t.Label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(t.Label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if r.Tab == model.TabSummary {
		filters := fmt.Sprintf("[y] %s   [s] %s", selectedLabel(r.YearOptions), selectedLabel(r.SemOptions))
		b.WriteString(m.styles.Filter.Render(filters))
		b.WriteString("\n")
		b.WriteString(m.styles.Card.Render(m.table.View()))
	} else {
		body := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(r.Placeholder.Title),
			m.styles.Placeholder.Render(r.Placeholder.Body),
		)
		b.WriteString(m.styles.Card.Render(body))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("tab switch • y year • s semester • enter open • r reload • q quit"))
	return b.String()
}

func selectedLabel(opts []view.Option) string {
	for _, o := range opts {
		if o.Selected {
			return o.Label
		}
	}
	return ""
}

// nextOption cycles to the option after current, wrapping around.
func nextOption(opts []model.FilterOption, current string) string {
	for i, o := range opts {
		if o.Value == current {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return opts[0].Value
}
