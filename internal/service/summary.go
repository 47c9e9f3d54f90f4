package service

import (
	"github.com/stemsi/exstem-summary/internal/model"
)

// Aggregate filters courses by year and semester and annotates each kept
// course with its PASSED/FAILED/IP record counts. Input order is kept.
// Records with any other remark are ignored. The result is never nil.
func Aggregate(courses []model.Course, records []model.StudentCourse, year model.YearFilter, sem model.SemFilter) []model.AnnotatedCourse {
	type tally struct{ passed, failed, ip int }

	counts := make(map[int]*tally)
	for _, r := range records {
		t := counts[r.CourseID]
		if t == nil {
			t = &tally{}
			counts[r.CourseID] = t
		}
		switch r.Remark {
		case model.RemarkPassed:
			t.passed++
		case model.RemarkFailed:
			t.failed++
		case model.RemarkInProgress:
			t.ip++
		}
	}

	out := make([]model.AnnotatedCourse, 0, len(courses))
	for _, c := range courses {
		if year != model.FilterAll && string(c.Year) != string(year) {
			continue
		}
		if sem != model.FilterAll && c.Sem.String() != string(sem) {
			continue
		}

		ac := model.AnnotatedCourse{Course: c}
		if t := counts[c.ID]; t != nil {
			ac.PassedCount = t.passed
			ac.FailedCount = t.failed
			ac.IPCount = t.ip
		}
		out = append(out, ac)
	}
	return out
}

// CourseDetail returns the annotated course with the given id and its
// records, or false if the course is not loaded.
func CourseDetail(snap Snapshot, courseID int) (model.CourseDetail, bool) {
	for _, c := range snap.Courses {
		if c.ID != courseID {
			continue
		}
		rows := Aggregate([]model.Course{c}, snap.Records, model.FilterAll, model.FilterAll)
		records := make([]model.StudentCourse, 0)
		for _, r := range snap.Records {
			if r.CourseID == courseID {
				records = append(records, r)
			}
		}
		return model.CourseDetail{Course: rows[0], Records: records}, true
	}
	return model.CourseDetail{}, false
}
