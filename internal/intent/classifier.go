package intent

import (
	"context"

	"mockmate/interview/internal/models"
)

// Result is the stable contract regardless of which tier answered.
type Result struct {
	Intent     models.Intent
	Confidence float64
	Tier       string // "heuristic" | "llm"
}

// Classifier labels a student utterance with an intent and confidence.
type Classifier interface {
	Classify(ctx context.Context, stage models.Stage, text string) (Result, error)
}
