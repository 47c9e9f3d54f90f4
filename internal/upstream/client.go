package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/model"
)

const (
	CoursesPath       = "/courses"
	StudentCoursePath = "/student-course"

	// maxErrorBody caps how much of a failed response is kept for the log.
	maxErrorBody = 512
)

// ErrFetchFailed matches every FetchError via errors.Is.
var ErrFetchFailed = errors.New("upstream fetch failed")

// FetchError describes a failed read of one upstream endpoint: a transport
// error, a non-2xx status, or a body that does not decode.
type FetchError struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("GET %s: HTTP %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("GET %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// TokenSource yields the bearer token for an outgoing request.
// An empty token with a nil error means "send no Authorization header".
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client reads course data from the administration API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

// NewClient creates a Client. baseURL must not end in a slash.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With().Str("component", "upstream_client").Logger(),
	}
}

// FetchCourses performs GET /courses.
func (c *Client) FetchCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := c.getJSON(ctx, CoursesPath, &courses); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// FetchStudentCourses performs GET /student-course.
func (c *Client) FetchStudentCourses(ctx context.Context) ([]model.StudentCourse, error) {
	var records []model.StudentCourse
	if err := c.getJSON(ctx, StudentCoursePath, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.StudentCourse{}
	}
	return records, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &FetchError{Endpoint: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return &FetchError{Endpoint: path, Err: fmt.Errorf("resolve token: %w", err)}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &FetchError{Endpoint: path, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &FetchError{Endpoint: path, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
