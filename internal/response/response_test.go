package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailEnvelopeCarriesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"year": "bad"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Data)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, "bad", body.Error.Fields["year"])
	assert.Equal(t, "req-1", body.Metadata.RequestID)
}

func TestOversizedRequestIDIsReplaced(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { Success(c, http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 500))
	r.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)
	assert.Less(t, len(id), 100)
}

func TestGetMessageDefault(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred.", GetMessage("NOPE"))
}
