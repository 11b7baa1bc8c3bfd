package models

import "time"

// ErrorResponse doubles as the JSON error body and a validation error value.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

// SessionResponse is the wire view of a session plus the latest
// interviewer message produced by the turn.
type SessionResponse struct {
	Session *Session `json:"session"`
	Message *Message `json:"message"`
	Warning string   `json:"warning,omitempty"`
}

// EvaluationResponse is the wire view of a finalized evaluation.
type EvaluationResponse struct {
	SessionID     string         `json:"session_id"`
	OverallScore  int            `json:"overall_score"`
	Rubric        map[string]int `json:"rubric"`
	Strengths     []string       `json:"strengths"`
	Weaknesses    []string       `json:"weaknesses"`
	NextSteps     []string       `json:"next_steps"`
	LowConfidence bool           `json:"low_confidence"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NewEvaluationResponse flattens a stored evaluation for the API.
func NewEvaluationResponse(e *Evaluation) EvaluationResponse {
	strengths, weaknesses, nextSteps := e.Summary()
	return EvaluationResponse{
		SessionID:     e.SessionID,
		OverallScore:  e.OverallScore,
		Rubric:        e.Rubric.Map(),
		Strengths:     strengths,
		Weaknesses:    weaknesses,
		NextSteps:     nextSteps,
		LowConfidence: e.LowConfidence,
		CreatedAt:     e.CreatedAt,
	}
}

// AIStatusResponse is the advisory gateway telemetry surfaced by /api/v1/ai/status.
type AIStatusResponse struct {
	Status       string `json:"status"` // "online" | "offline" | "unknown"
	Configured   bool   `json:"configured"`
	FallbackMode bool   `json:"fallback_mode"`
	LastError    string `json:"last_error,omitempty"`
}
