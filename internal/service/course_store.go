package service

import (
	"sync"

	"github.com/stemsi/exstem-summary/internal/model"
)

// Snapshot is a consistent read of a CourseStore.
type Snapshot struct {
	Courses       []model.Course
	Records       []model.StudentCourse
	CoursesLoaded bool
	RecordsLoaded bool
}

// CourseStore is the page-owned state written by the loader. Each list is
// replaced wholesale on a successful fetch and never mutated in place.
// After Close, writes are discarded.
type CourseStore struct {
	mu            sync.RWMutex
	courses       []model.Course
	records       []model.StudentCourse
	coursesLoaded bool
	recordsLoaded bool
	closed        bool
}

// NewCourseStore returns a store with both lists empty.
func NewCourseStore() *CourseStore {
	return &CourseStore{
		courses: []model.Course{},
		records: []model.StudentCourse{},
	}
}

// SetCourses replaces the course list. It reports false if the store is closed.
func (s *CourseStore) SetCourses(courses []model.Course) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.courses = courses
	s.coursesLoaded = true
	return true
}

// SetStudentCourses replaces the record list. It reports false if the store is closed.
func (s *CourseStore) SetStudentCourses(records []model.StudentCourse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.records = records
	s.recordsLoaded = true
	return true
}

func (s *CourseStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Courses:       s.courses,
		Records:       s.records,
		CoursesLoaded: s.coursesLoaded,
		RecordsLoaded: s.recordsLoaded,
	}
}

// Close marks the owning page as gone.
func (s *CourseStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
