package model

// FilterAll is the sentinel that disables a filter.
const FilterAll = "All"

// YearFilter narrows the summary to one curriculum year, or FilterAll.
type YearFilter string

// SemFilter narrows the summary to one semester ("1" or "2"), or FilterAll.
type SemFilter string

// Valid reports whether f is one of the selectable year options.
func (f YearFilter) Valid() bool {
	if f == FilterAll {
		return true
	}
	for _, y := range Years {
		if string(f) == string(y) {
			return true
		}
	}
	return false
}

// Valid reports whether f is one of the selectable semester options.
func (f SemFilter) Valid() bool {
	switch f {
	case FilterAll, "1", "2":
		return true
	}
	return false
}

// FilterOption is one entry of a filter selector.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// YearOptions are the year selector entries in display order.
var YearOptions = []FilterOption{
	{Value: FilterAll, Label: "All Years"},
	{Value: string(YearFirst), Label: "First Year"},
	{Value: string(YearSecond), Label: "Second Year"},
	{Value: string(YearThird), Label: "Third Year"},
	{Value: string(YearFourth), Label: "Fourth Year"},
}

// SemOptions are the semester selector entries in display order.
var SemOptions = []FilterOption{
	{Value: FilterAll, Label: "All Semesters"},
	{Value: "1", Label: "1st Semester"},
	{Value: "2", Label: "2nd Semester"},
}

// SummaryQuery is the query string of the summary page and API.
type SummaryQuery struct {
	Tab  string `form:"tab" json:"tab" binding:"omitempty,oneof=summary detailed"`
	Year string `form:"year" json:"year" binding:"omitempty,oneof=All FIRST SECOND THIRD FOURTH"`
	Sem  string `form:"sem" json:"sem" binding:"omitempty,oneof=All 1 2"`
}

// SummaryResponse is the JSON body of GET /api/v1/summary.
type SummaryResponse struct {
	Rows    []AnnotatedCourse `json:"rows"`
	Year    YearFilter        `json:"year"`
	Sem     SemFilter         `json:"sem"`
	Courses int               `json:"courses_loaded"`
	Records int               `json:"records_loaded"`
}

// CourseDetail is the body of the per-course detail view.
type CourseDetail struct {
	Course  AnnotatedCourse `json:"course"`
	Records []StudentCourse `json:"records"`
}
