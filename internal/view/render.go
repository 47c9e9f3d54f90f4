package view

import (
	"net/url"

	"github.com/stemsi/exstem-summary/internal/model"
)

// TabLink is one entry of the tab bar.
type TabLink struct {
	Label  string
	Href   string
	Active bool
}

// Option is one entry of a filter selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Row is one line of the summary table.
type Row struct {
	model.AnnotatedCourse
	Href string
}

// Model is everything a renderer needs to draw the page.
type Model struct {
	Title         string
	Tab           model.Tab
	Tabs          []TabLink
	YearOptions   []Option
	SemOptions    []Option
	Rows          []Row
	Placeholder   Placeholder
	CoursesLoaded bool
	RecordsLoaded bool
}

// Render derives the render model from the page state. The rows are
// recomputed on every call and only populated on the summary tab.
func (p *Page) Render() Model {
	m := Model{
		Title:       "Coaching Summary",
		Tab:         p.tab,
		YearOptions: options(model.YearOptions, string(p.year)),
		SemOptions:  options(model.SemOptions, string(p.sem)),
		Placeholder: DetailedPlaceholder,
	}

	for _, t := range model.Tabs {
		m.Tabs = append(m.Tabs, TabLink{
			Label:  t.Label(),
			Href:   p.href(t),
			Active: t == p.tab,
		})
	}

	snap := p.store.Snapshot()
	m.CoursesLoaded = snap.CoursesLoaded
	m.RecordsLoaded = snap.RecordsLoaded

	if p.tab == model.TabSummary {
		rows := p.Rows()
		m.Rows = make([]Row, 0, len(rows))
		for _, r := range rows {
			m.Rows = append(m.Rows, Row{AnnotatedCourse: r, Href: DetailPath(r.ID)})
		}
	}
	return m
}

// href is the link that selects tab while keeping the current filters.
func (p *Page) href(tab model.Tab) string {
	q := url.Values{}
	q.Set("tab", string(tab))
	if p.year != model.FilterAll {
		q.Set("year", string(p.year))
	}
	if p.sem != model.FilterAll {
		q.Set("sem", string(p.sem))
	}
	return "/summary?" + q.Encode()
}

func options(src []model.FilterOption, selected string) []Option {
	out := make([]Option, 0, len(src))
	for _, o := range src {
		out = append(out, Option{Value: o.Value, Label: o.Label, Selected: o.Value == selected})
	}
	return out
}

// ErrorModel is the data for the HTML error page.
type ErrorModel struct {
	Title   string
	Message string
	Fields  map[string]string
}
