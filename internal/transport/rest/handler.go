// Package rest serves the catalog over JSON HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"course-explorer/internal/catalog"
	"course-explorer/internal/domain"
	"course-explorer/internal/query"
	"course-explorer/internal/transport/middleware"
)

// catalogService is the part of catalog.Service the handlers need.
type catalogService interface {
	Current() (*catalog.Catalog, error)
	Detail(ctx context.Context, id string) (catalog.Detail, error)
	Ready() bool
}

// Handler serves the /api routes.
type Handler struct {
	svc catalogService
	log *slog.Logger
}

func NewHandler(svc catalogService, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Courses serves GET /api/courses?q=&bucket=.
func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	bucket := strings.TrimSpace(r.URL.Query().Get("bucket"))
	if bucket != "" && !cat.Table().Courses.Has(bucket) {
		h.fail(w, r, http.StatusBadRequest, "unknown course bucket "+bucket)
		return
	}
	writeJSON(w, http.StatusOK, cat.Courses(r.URL.Query().Get("q"), bucket))
}

// CourseBuckets serves GET /api/courses/buckets.
func (h *Handler) CourseBuckets(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cat.CourseBuckets())
}

// Course serves GET /api/courses/{id}.
func (h *Handler) Course(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Careers serves GET /api/careers?q=&course=.
func (h *Handler) Careers(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	p := query.Params{}.WithText(q.Get("q"))
	if course := q.Get("course"); course != "" {
		p = p.WithCourse(course)
	}
	writeJSON(w, http.StatusOK, cat.Careers(p))
}

// CareerCourses serves GET /api/careers/courses.
func (h *Handler) CareerCourses(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cat.UniqueCourses())
}

// Universities serves GET /api/universities?q=&bucket=.
func (h *Handler) Universities(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	bucket := strings.TrimSpace(r.URL.Query().Get("bucket"))
	if bucket != "" && !cat.Table().Universities.Has(bucket) {
		h.fail(w, r, http.StatusBadRequest, "unknown university bucket "+bucket)
		return
	}
	writeJSON(w, http.StatusOK, cat.Universities(r.URL.Query().Get("q"), bucket))
}

// Home serves GET /api/home.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cat.Home())
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	cat, err := h.svc.Current()
	if err != nil {
		h.error(w, r, err)
		return nil, false
	}
	return cat, true
}

// error maps err to a status: unknown ids are 404, a catalog that has not
// loaded yet is 503, anything else came from upstream and is 502.
func (h *Handler) error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.fail(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnavailable):
		h.fail(w, r, http.StatusServiceUnavailable, "catalog not loaded")
	default:
		h.log.ErrorContext(r.Context(), "upstream error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		h.fail(w, r, http.StatusBadGateway, "upstream unavailable")
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
