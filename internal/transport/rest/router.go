package rest

import (
	"net/http"

	"course-explorer/internal/transport/middleware"
)

// NewRouter registers every route and wraps the mux with mw.
func NewRouter(h *Handler, health *HealthHandler, mw middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/home", h.Home)
	mux.HandleFunc("GET /api/courses", h.Courses)
	mux.HandleFunc("GET /api/courses/buckets", h.CourseBuckets)
	// Course ids may contain "/" (Technical/Vocational).
	mux.HandleFunc("GET /api/courses/{id...}", h.Course)
	mux.HandleFunc("GET /api/careers", h.Careers)
	mux.HandleFunc("GET /api/careers/courses", h.CareerCourses)
	mux.HandleFunc("GET /api/universities", h.Universities)

	if mw == nil {
		return mux
	}
	return mw(mux)
}
