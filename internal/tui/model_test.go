package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stemsi/exstem-summary/internal/model"
	"github.com/stemsi/exstem-summary/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	courses     []model.Course
	records     []model.StudentCourse
	failCourses bool
}

func (s *stubLoader) FetchCourses(_ context.Context, store *service.CourseStore) {
	if !s.failCourses {
		store.SetCourses(s.courses)
	}
}

func (s *stubLoader) FetchStudentCourses(_ context.Context, store *service.CourseStore) {
	store.SetStudentCourses(s.records)
}

func newStub() *stubLoader {
	return &stubLoader{
		courses: []model.Course{
			{ID: 1, Subject: "Math", Description: "Algebra", Year: model.YearFirst, Sem: 1},
			{ID: 2, Subject: "Physics", Description: "Mechanics", Year: model.YearSecond, Sem: 2},
		},
		records: []model.StudentCourse{
			{CourseID: 1, Remark: model.RemarkPassed},
			{CourseID: 2, Remark: model.RemarkInProgress},
		},
	}
}

// drain runs cmd and feeds every resulting message back into m.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case nil:
	default:
		var next tea.Cmd
		m, next = m.Update(msg)
		m = drain(t, m, next)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	m, cmd := m.Update(key(s))
	if s == "q" {
		return m
	}
	return drain(t, m, cmd)
}

func started(t *testing.T, l Loader) Model {
	t.Helper()
	m, err := New(context.Background(), l, model.FilterAll, model.FilterAll)
	require.NoError(t, err)
	return drain(t, m, m.Init()).(Model)
}

func TestLoadFillsTable(t *testing.T) {
	m := started(t, newStub())

	assert.Equal(t, "Loaded 2 courses, 2 records", m.Status())
	id, ok := m.SelectedCourseID()
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Contains(t, m.View(), "Math")
	assert.Contains(t, m.View(), "All Years")
}

func TestFilterKeysCycle(t *testing.T) {
	m := started(t, newStub())

	m = press(t, m, "y").(Model)
	assert.Equal(t, model.YearFilter("FIRST"), m.Page().YearFilter())
	assert.Contains(t, m.View(), "First Year")

	m = press(t, m, "y").(Model)
	assert.Equal(t, model.YearFilter("SECOND"), m.Page().YearFilter())
	id, ok := m.SelectedCourseID()
	require.True(t, ok)
	assert.Equal(t, 2, id)

	m = press(t, m, "s").(Model)
	assert.Equal(t, model.SemFilter("1"), m.Page().SemFilter())
	_, ok = m.SelectedCourseID()
	assert.False(t, ok)
}

func TestSelectionRecoversAfterEmptyFilter(t *testing.T) {
	m := started(t, newStub())

	// SECOND + sem 1 matches nothing, SECOND + sem 2 matches Physics.
	m = press(t, m, "y").(Model)
	m = press(t, m, "y").(Model)
	m = press(t, m, "s").(Model)
	_, ok := m.SelectedCourseID()
	require.False(t, ok)

	m = press(t, m, "s").(Model)
	assert.Equal(t, model.SemFilter("2"), m.Page().SemFilter())
	id, ok := m.SelectedCourseID()
	require.True(t, ok)
	assert.Equal(t, 2, id)

	m = press(t, m, "enter").(Model)
	assert.Equal(t, "Open /summary/2", m.Status())
}

func TestSelectionAvailableWhenDataArrivesAfterNew(t *testing.T) {
	m, err := New(context.Background(), newStub(), model.FilterAll, model.FilterAll)
	require.NoError(t, err)
	_, ok := m.SelectedCourseID()
	require.False(t, ok)

	m = drain(t, m, m.Init()).(Model)
	m = press(t, m, "enter").(Model)
	assert.Equal(t, "Open /summary/1", m.Status())
}

func TestTabKeys(t *testing.T) {
	m := started(t, newStub())

	m = press(t, m, "tab").(Model)
	assert.Equal(t, model.TabDetailed, m.Page().Tab())
	assert.Contains(t, m.View(), "Detailed Subject Information")

	m = press(t, m, "1").(Model)
	assert.Equal(t, model.TabSummary, m.Page().Tab())
	m = press(t, m, "2").(Model)
	assert.Equal(t, model.TabDetailed, m.Page().Tab())
}

func TestEnterShowsDetailRoute(t *testing.T) {
	m := started(t, newStub())
	m = press(t, m, "enter").(Model)
	assert.Equal(t, "Open /summary/1", m.Status())
}

func TestCoursesFailureShowsEmptyTable(t *testing.T) {
	stub := newStub()
	stub.failCourses = true
	m := started(t, stub)

	assert.Contains(t, m.Status(), "Could not load courses")
	_, ok := m.SelectedCourseID()
	assert.False(t, ok)
}

func TestReloadKeepsFiltersAndDropsStaleResults(t *testing.T) {
	m := started(t, newStub())
	m = press(t, m, "y").(Model)

	m2, cmd := m.Update(key("r"))
	m = m2.(Model)
	assert.Equal(t, model.YearFilter("FIRST"), m.Page().YearFilter())
	assert.Equal(t, "Loading...", m.Status())

	// A message from the previous page generation is ignored.
	m3, _ := m.Update(fetchedMsg{gen: m.gen - 1, what: "courses"})
	assert.Equal(t, "Loading...", m3.(Model).Status())

	m = drain(t, m, cmd).(Model)
	assert.Equal(t, "Loaded 2 courses, 2 records", m.Status())
}

func TestQuit(t *testing.T) {
	m := started(t, newStub())
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNewRejectsBadFilters(t *testing.T) {
	_, err := New(context.Background(), newStub(), "FIFTH", model.FilterAll)
	assert.Error(t, err)
}

func TestNextOptionWraps(t *testing.T) {
	assert.Equal(t, "1", nextOption(model.SemOptions, "All"))
	assert.Equal(t, "All", nextOption(model.SemOptions, "2"))
	assert.Equal(t, "All", nextOption(model.SemOptions, "bogus"))
}
