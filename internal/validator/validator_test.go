package validator

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/exstem-summary/internal/model"
	"github.com/stretchr/testify/assert"
)

func bindQuery(t *testing.T, rawQuery string) (model.SummaryQuery, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/summary?"+rawQuery, nil)

	var q model.SummaryQuery
	fields := BindQuery(c, &q)
	return q, fields
}

func TestBindQueryAcceptsKnownValues(t *testing.T) {
	q, fields := bindQuery(t, "tab=detailed&year=THIRD&sem=2")
	assert.Nil(t, fields)
	assert.Equal(t, "detailed", q.Tab)
	assert.Equal(t, "THIRD", q.Year)
	assert.Equal(t, "2", q.Sem)
}

func TestBindQueryEmptyIsValid(t *testing.T) {
	q, fields := bindQuery(t, "")
	assert.Nil(t, fields)
	assert.Empty(t, q.Year)
}

func TestBindQueryReportsFieldNames(t *testing.T) {
	_, fields := bindQuery(t, "year=FIFTH&sem=3")
	assert.Contains(t, fields, "year")
	assert.Contains(t, fields, "sem")
	assert.Contains(t, fields["year"], "must be one of")
}
