package handlers

import (
	"context"
	"net/http"
	"time"

	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// Pinger is anything readiness depends on
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check related requests
type HealthHandler struct {
	db  Pinger
	llm Pinger
}

// NewHealthHandler creates a new HealthHandler instance. llm may be nil.
func NewHealthHandler(db Pinger, llm Pinger) *HealthHandler {
	return &HealthHandler{db: db, llm: llm}
}

// HealthCheck handles basic health check (no database)
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck handles process liveness check
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck handles readiness check. Only the database gates
// readiness; the generation service is reported but optional.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	details := map[string]any{}
	status, code := "ready", http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		details["db"] = err.Error()
		status, code = "degraded", http.StatusServiceUnavailable
	} else {
		details["db"] = "ok"
	}

	if h.llm != nil {
		if err := h.llm.Ping(ctx); err != nil {
			details["llm"] = err.Error()
		} else {
			details["llm"] = "ok"
		}
	}

	utils.WriteJSONResponse(w, code, dto.HealthResponse{Status: status, Details: details})
}
