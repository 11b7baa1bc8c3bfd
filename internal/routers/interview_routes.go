package routers

import (
	"mockmate/interview/internal/handlers"
	"mockmate/interview/internal/middleware"
	"mockmate/interview/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, statusHandler *handlers.StatusHandler) {
	router.Route("/api/v1/interview", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.StartSessionRequest]()).
			Post("/sessions", sessionHandler.StartHandler)
		r.With(middleware.ValidateRequest[*models.UserMessageRequest]()).
			Post("/sessions/{sessionID}/messages", sessionHandler.MessageHandler)
		r.With(middleware.ValidateRequest[*models.FinalizeRequest]()).
			Post("/sessions/{sessionID}/finalize", sessionHandler.FinalizeHandler)
		r.Post("/sessions/{sessionID}/reset", sessionHandler.ResetHandler)
	})

	router.Get("/api/v1/ai/status", statusHandler.AIStatusHandler)
}
