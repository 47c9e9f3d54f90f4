package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/model"
)

// CourseFetcher reads the two upstream collections.
type CourseFetcher interface {
	FetchCourses(ctx context.Context) ([]model.Course, error)
	FetchStudentCourses(ctx context.Context) ([]model.StudentCourse, error)
}

// Loader populates a CourseStore from upstream. Failures are logged and
// leave the affected list untouched. There are no retries.
type Loader struct {
	fetcher CourseFetcher
	log     zerolog.Logger
}

func NewLoader(fetcher CourseFetcher, log zerolog.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		log:     log.With().Str("component", "loader").Logger(),
	}
}

// Start issues both fetches concurrently without ordering between them.
// The returned channel is closed once both have settled. Results that
// arrive after ctx is done are dropped.
func (l *Loader) Start(ctx context.Context, store *CourseStore) <-chan struct{} {
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l.FetchCourses(ctx, store)
	}()
	go func() {
		defer wg.Done()
		l.FetchStudentCourses(ctx, store)
	}()

	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

// Load runs Start and blocks until both fetches settle or ctx is done.
func (l *Loader) Load(ctx context.Context, store *CourseStore) {
	select {
	case <-l.Start(ctx, store):
	case <-ctx.Done():
	}
}

// FetchCourses reads all courses into store.
func (l *Loader) FetchCourses(ctx context.Context, store *CourseStore) {
	courses, err := l.fetcher.FetchCourses(ctx)
	if err != nil {
		l.log.Error().Err(err).Msg("Error fetching courses")
		return
	}
	if ctx.Err() != nil || !store.SetCourses(courses) {
		l.log.Debug().Msg("Page closed, discarding courses")
		return
	}
	l.log.Debug().Int("count", len(courses)).Msg("Courses loaded")
}

// FetchStudentCourses reads all student-course records into store.
func (l *Loader) FetchStudentCourses(ctx context.Context, store *CourseStore) {
	records, err := l.fetcher.FetchStudentCourses(ctx)
	if err != nil {
		l.log.Error().Err(err).Msg("Error fetching student-course data")
		return
	}
	if ctx.Err() != nil || !store.SetStudentCourses(records) {
		l.log.Debug().Msg("Page closed, discarding student-course data")
		return
	}
	l.log.Debug().Int("count", len(records)).Msg("Student-course data loaded")
}
