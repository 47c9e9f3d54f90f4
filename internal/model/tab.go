package model

// Tab is a page tab of the coaching summary.
type Tab string

const (
	TabSummary  Tab = "summary"
	TabDetailed Tab = "detailed"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabSummary, TabDetailed}

// Label is the tab caption.
func (t Tab) Label() string {
	switch t {
	case TabSummary:
		return "Summary"
	case TabDetailed:
		return "Detailed View"
	default:
		return string(t)
	}
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return t == TabSummary || t == TabDetailed
}
