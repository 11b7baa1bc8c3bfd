package handlers

import (
	"net/http"

	"mockmate/interview/internal/gateway"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/utils"
)

// StatusHandler surfaces the gateway's advisory health telemetry.
type StatusHandler struct {
	health *gateway.Health
}

func NewStatusHandler(health *gateway.Health) *StatusHandler {
	return &StatusHandler{health: health}
}

func (h *StatusHandler) AIStatusHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.health.Snapshot()
	utils.JSON(w, http.StatusOK, models.AIStatusResponse{
		Status:       string(snap.Status),
		Configured:   snap.Configured,
		FallbackMode: snap.FallbackMode,
		LastError:    snap.LastError,
	})
}
