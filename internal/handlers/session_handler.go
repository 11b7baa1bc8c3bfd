package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mockmate/interview/internal/engine"
	"mockmate/interview/internal/middleware"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/storage"
	"mockmate/interview/internal/utils"
)

// SessionHandler exposes the conversation engine over HTTP. It owns no
// interview logic; it validates, delegates, and maps errors to statuses.
type SessionHandler struct {
	engine *engine.Engine
	logger *zap.Logger
}

func NewSessionHandler(eng *engine.Engine, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{engine: eng, logger: logger}
}

func (h *SessionHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartSessionRequest](r)

	session, msg, err := h.engine.StartSession(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to start session", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "start_failed",
			Message: "Failed to start interview session",
		})
		return
	}

	utils.JSON(w, http.StatusCreated, models.SessionResponse{Session: session, Message: msg})
}

func (h *SessionHandler) MessageHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	req := middleware.GetValidatedRequest[*models.UserMessageRequest](r)

	session, msg, warning, err := h.engine.HandleUserMessage(r.Context(), sessionID, req.Content)
	if err != nil {
		h.writeEngineError(w, sessionID, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: session, Message: msg, Warning: warning})
}

func (h *SessionHandler) FinalizeHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	req := middleware.GetValidatedRequest[*models.FinalizeRequest](r)

	eval, err := h.engine.Finalize(r.Context(), sessionID, req.Force)
	if err != nil {
		h.writeEngineError(w, sessionID, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.NewEvaluationResponse(eval))
}

func (h *SessionHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.engine.Reset(r.Context(), sessionID)
	if err != nil {
		h.writeEngineError(w, sessionID, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: session})
}

func (h *SessionHandler) writeEngineError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Session not found",
		})
	case errors.Is(err, engine.ErrSessionDone):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "session_done",
			Message: "Session is already finished",
		})
	case errors.Is(err, engine.ErrSessionNotStarted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "session_not_started",
			Message: "Session has not been started",
		})
	case errors.Is(err, engine.ErrNotReady):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "not_ready",
			Message: "Session cannot be finalized before wrapup",
		})
	default:
		h.logger.Error("engine error",
			zap.String("session_id", sessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to process the request",
		})
	}
}
