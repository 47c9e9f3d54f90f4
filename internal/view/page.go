// Package view holds the UI state of the coaching summary page.
package view

import (
	"errors"
	"fmt"

	"github.com/stemsi/exstem-summary/internal/model"
	"github.com/stemsi/exstem-summary/internal/service"
)

var (
	ErrUnknownTab  = errors.New("unknown tab")
	ErrInvalidYear = errors.New("invalid year filter")
	ErrInvalidSem  = errors.New("invalid semester filter")
)

// Page is the state of one coaching summary page: the active tab, the two
// filter selections, and the data the loader delivered. It is only changed
// through its setters.
type Page struct {
	store *service.CourseStore
	tab   model.Tab
	year  model.YearFilter
	sem   model.SemFilter
}

// NewPage returns a page on the summary tab with both filters set to All.
func NewPage(store *service.CourseStore) *Page {
	return &Page{
		store: store,
		tab:   model.TabSummary,
		year:  model.FilterAll,
		sem:   model.FilterAll,
	}
}

func (p *Page) Tab() model.Tab               { return p.tab }
func (p *Page) YearFilter() model.YearFilter { return p.year }
func (p *Page) SemFilter() model.SemFilter   { return p.sem }

// SelectTab moves to the given tab. Any tab may follow any other.
func (p *Page) SelectTab(tab model.Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	p.tab = tab
	return nil
}

func (p *Page) SetYearFilter(year model.YearFilter) error {
	if !year.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	p.year = year
	return nil
}

func (p *Page) SetSemFilter(sem model.SemFilter) error {
	if !sem.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSem, sem)
	}
	p.sem = sem
	return nil
}

// Apply sets whichever of the query's fields are non-empty. The page is
// left unchanged if any field is invalid.
func (p *Page) Apply(q model.SummaryQuery) error {
	next := *p
	if q.Tab != "" {
		if err := next.SelectTab(model.Tab(q.Tab)); err != nil {
			return err
		}
	}
	if q.Year != "" {
		if err := next.SetYearFilter(model.YearFilter(q.Year)); err != nil {
			return err
		}
	}
	if q.Sem != "" {
		if err := next.SetSemFilter(model.SemFilter(q.Sem)); err != nil {
			return err
		}
	}
	*p = next
	return nil
}

// Rows recomputes the summary table from the current data and filters.
func (p *Page) Rows() []model.AnnotatedCourse {
	snap := p.store.Snapshot()
	return service.Aggregate(snap.Courses, snap.Records, p.year, p.sem)
}

// Snapshot exposes the loaded data.
func (p *Page) Snapshot() service.Snapshot {
	return p.store.Snapshot()
}

// Close tears the page down; late fetch results are dropped afterwards.
func (p *Page) Close() {
	p.store.Close()
}

// DetailPath is the route a selected summary row navigates to.
func DetailPath(courseID int) string {
	return fmt.Sprintf("/summary/%d", courseID)
}

// Placeholder is the static content of the detailed tab.
type Placeholder struct {
	Title string
	Body  string
}

// DetailedPlaceholder is all the detailed tab shows for now.
var DetailedPlaceholder = Placeholder{
	Title: "Detailed Subject Information",
	Body:  "Here you can display more detailed insights about subjects.",
}
