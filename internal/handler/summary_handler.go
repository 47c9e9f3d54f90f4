package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/model"
	"github.com/stemsi/exstem-summary/internal/response"
	"github.com/stemsi/exstem-summary/internal/service"
	"github.com/stemsi/exstem-summary/internal/validator"
	"github.com/stemsi/exstem-summary/internal/view"
)

// SummaryHandler serves the coaching summary page and its JSON API.
// Each request is one page lifetime: data is loaded on entry and the page
// is closed when the handler returns.
type SummaryHandler struct {
	loader *service.Loader
	log    zerolog.Logger
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(loader *service.Loader, log zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		loader: loader,
		log:    log.With().Str("component", "summary_handler").Logger(),
	}
}

// openPage binds the query to a fresh page and loads its data. On a bad
// query it returns the field errors and no page.
func (h *SummaryHandler) openPage(c *gin.Context) (*view.Page, map[string]string) {
	var q model.SummaryQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		return nil, fields
	}

	store := service.NewCourseStore()
	page := view.NewPage(store)
	if err := page.Apply(q); err != nil {
		return nil, map[string]string{"detail": err.Error()}
	}

	h.loader.Load(c.Request.Context(), store)
	return page, nil
}

// Page godoc
// GET /summary?tab=&year=&sem=
// Renders the tabbed HTML page. Fetch failures render as an empty table.
func (h *SummaryHandler) Page(c *gin.Context) {
	page, fields := h.openPage(c)
	if page == nil {
		htmlError(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	defer page.Close()

	c.HTML(http.StatusOK, "summary.tmpl", page.Render())
}

// Detail godoc
// GET /summary/:course_id
// Read-only view of one course and its student records.
func (h *SummaryHandler) Detail(c *gin.Context) {
	detail, status, code := h.courseDetail(c)
	if code != "" {
		htmlError(c, status, code, nil)
		return
	}
	c.HTML(http.StatusOK, "detail.tmpl", detail)
}

// GetSummary godoc
// GET /api/v1/summary?year=&sem=
// Returns the filtered, annotated course rows.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	page, fields := h.openPage(c)
	if page == nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	defer page.Close()

	snap := page.Snapshot()
	response.Success(c, http.StatusOK, model.SummaryResponse{
		Rows:    page.Rows(),
		Year:    page.YearFilter(),
		Sem:     page.SemFilter(),
		Courses: len(snap.Courses),
		Records: len(snap.Records),
	})
}

// GetCourse godoc
// GET /api/v1/summary/courses/:course_id
func (h *SummaryHandler) GetCourse(c *gin.Context) {
	detail, status, code := h.courseDetail(c)
	if code != "" {
		response.Fail(c, status, code)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// GetFilters godoc
// GET /api/v1/summary/filters
// Returns the selector options in display order.
func (h *SummaryHandler) GetFilters(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"years":     model.YearOptions,
		"semesters": model.SemOptions,
		"tabs":      model.Tabs,
	})
}

// courseDetail loads the page data and looks up :course_id. A non-empty
// code means the lookup failed with the given status.
func (h *SummaryHandler) courseDetail(c *gin.Context) (model.CourseDetail, int, response.ErrCode) {
	id, err := strconv.Atoi(c.Param("course_id"))
	if err != nil {
		return model.CourseDetail{}, http.StatusBadRequest, response.ErrInvalidID
	}

	store := service.NewCourseStore()
	defer store.Close()
	h.loader.Load(c.Request.Context(), store)

	detail, ok := service.CourseDetail(store.Snapshot(), id)
	if !ok {
		h.log.Debug().Int("course_id", id).Msg("Course not in loaded list")
		return model.CourseDetail{}, http.StatusNotFound, response.ErrNotFound
	}
	return detail, http.StatusOK, ""
}

var errorTitles = map[response.ErrCode]string{
	response.ErrValidation: "Invalid filter",
	response.ErrInvalidID:  "Invalid course id",
	response.ErrNotFound:   "Course not found",
}

// htmlError renders the error page for the browser routes.
func htmlError(c *gin.Context, status int, code response.ErrCode, fields map[string]string) {
	title, ok := errorTitles[code]
	if !ok {
		title = "Something went wrong"
	}
	c.HTML(status, "error.tmpl", view.ErrorModel{
		Title:   title,
		Message: response.GetMessage(code),
		Fields:  fields,
	})
}
