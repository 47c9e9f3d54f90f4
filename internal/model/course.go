package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Year is the curriculum year a course belongs to.
type Year string

const (
	YearFirst  Year = "FIRST"
	YearSecond Year = "SECOND"
	YearThird  Year = "THIRD"
	YearFourth Year = "FOURTH"
)

// Years lists the curriculum years in display order.
var Years = []Year{YearFirst, YearSecond, YearThird, YearFourth}

// Remark is the outcome label on a student's enrollment in a course.
type Remark string

const (
	RemarkPassed     Remark = "PASSED"
	RemarkFailed     Remark = "FAILED"
	RemarkInProgress Remark = "IP"
)

// parseLooseInt decodes a JSON number, a numeric string or null (as 0).
// The upstream API is not consistent about quoting numeric fields.
func parseLooseInt(data []byte) (int, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return 0, nil
	}

	var raw json.Number
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return 0, err
		}
		raw = json.Number(strings.TrimSpace(str))
	} else {
		raw = json.Number(data)
	}
	return strconv.Atoi(raw.String())
}

type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	v, err := parseLooseInt(data)
	if err != nil {
		return fmt.Errorf("id %s: %w", data, err)
	}
	*n = looseInt(v)
	return nil
}

// Semester is the term number of a course. Both 1 and "1" are accepted.
type Semester int

// UnmarshalJSON accepts a JSON number or a numeric string.
func (s *Semester) UnmarshalJSON(data []byte) error {
	n, err := parseLooseInt(data)
	if err != nil {
		return fmt.Errorf("semester %s: %w", data, err)
	}
	*s = Semester(n)
	return nil
}

// String returns the decimal form used by the semester filter.
func (s Semester) String() string {
	return strconv.Itoa(int(s))
}

// Course is one course offering as served by GET /courses.
type Course struct {
	ID          int      `json:"id"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Year        Year     `json:"year"`
	Sem         Semester `json:"sem"`
}

// UnmarshalJSON accepts the id as a number or a numeric string.
func (c *Course) UnmarshalJSON(data []byte) error {
	type plain Course
	aux := struct {
		*plain
		ID looseInt `json:"id"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.ID = int(aux.ID)
	return nil
}

// StudentCourse is one student's outcome in one course, as served by
// GET /student-course.
type StudentCourse struct {
	ID        int    `json:"id,omitempty"`
	StudentID int    `json:"studentId,omitempty"`
	CourseID  int    `json:"courseId"`
	Remark    Remark `json:"remark"`
}

// UnmarshalJSON accepts the ids as numbers or numeric strings.
func (r *StudentCourse) UnmarshalJSON(data []byte) error {
	type plain StudentCourse
	aux := struct {
		*plain
		ID        looseInt `json:"id"`
		StudentID looseInt `json:"studentId"`
		CourseID  looseInt `json:"courseId"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID, r.StudentID, r.CourseID = int(aux.ID), int(aux.StudentID), int(aux.CourseID)
	return nil
}

// AnnotatedCourse is a Course enriched with remark counts for display.
// It is derived on every render and never stored.
type AnnotatedCourse struct {
	Course
	PassedCount int `json:"passedCount"`
	FailedCount int `json:"failedCount"`
	IPCount     int `json:"ipCount"`
}

// UnmarshalJSON decodes the embedded Course and the counts. Without it the
// promoted Course.UnmarshalJSON would drop the counts.
func (a *AnnotatedCourse) UnmarshalJSON(data []byte) error {
	if err := a.Course.UnmarshalJSON(data); err != nil {
		return err
	}
	var counts struct {
		PassedCount int `json:"passedCount"`
		FailedCount int `json:"failedCount"`
		IPCount     int `json:"ipCount"`
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return err
	}
	a.PassedCount, a.FailedCount, a.IPCount = counts.PassedCount, counts.FailedCount, counts.IPCount
	return nil
}
