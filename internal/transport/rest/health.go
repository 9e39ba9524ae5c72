package rest

import (
	"net/http"
	"time"
)

// HealthHandler serves the probe endpoints.
type HealthHandler struct {
	svc     catalogService
	version string
}

func NewHealthHandler(svc catalogService, version string) *HealthHandler {
	return &HealthHandler{svc: svc, version: version}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status   string    `json:"status"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready returns 200 once a catalog has been loaded, 503 before.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports the catalog source and load time along with the version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	status := http.StatusOK
	overall := "ok"

	cat, err := h.svc.Current()
	if err != nil {
		components["catalog"] = CompStatus{Status: "down"}
		status = http.StatusServiceUnavailable
		overall = "down"
	} else {
		components["catalog"] = CompStatus{Status: "ok", Source: cat.Source(), LoadedAt: cat.LoadedAt()}
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
