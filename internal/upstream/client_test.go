package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken struct {
	token string
	err   error
}

func (s staticToken) AccessToken(context.Context) (string, error) { return s.token, s.err }

func newTestClient(url string, tokens TokenSource) *Client {
	return NewClient(url, 2*time.Second, tokens, zerolog.Nop())
}

func TestFetchCoursesSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, CoursesPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"subject":"Math","description":"Algebra","year":"FIRST","sem":1}]`))
	}))
	defer srv.Close()

	courses, err := newTestClient(srv.URL, staticToken{token: "tok-123"}).FetchCourses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	require.Len(t, courses, 1)
	assert.Equal(t, model.YearFirst, courses[0].Year)
}

func TestFetchWithoutTokenOmitsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, staticToken{}).FetchStudentCourses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchNon2xxIsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, staticToken{token: "old"}).FetchStudentCourses(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusUnauthorized, fe.Status)
	assert.Equal(t, StudentCoursePath, fe.Endpoint)
	assert.Contains(t, err.Error(), "HTTP 401")
}

func TestFetchMalformedBodyIsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"courses":`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, staticToken{}).FetchCourses(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchNetworkErrorIsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, staticToken{}).FetchCourses(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchTokenErrorIsFetchFailure(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	boom := errors.New("redis down")
	_, err := newTestClient(srv.URL, staticToken{err: boom}).FetchCourses(context.Background())

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
