package storage

import (
	"context"
	"errors"
	"time"

	"mockmate/interview/internal/models"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)

// Store is the persistence collaborator boundary. The engine and scorer
// depend on this interface; the gorm implementation below is the real one
// and tests use an in-memory sqlite database behind the same type.
type Store interface {
	CreateSession(ctx context.Context, session *models.Session) error
	LoadSession(ctx context.Context, id string) (*models.Session, error)
	SaveSession(ctx context.Context, session *models.Session) error

	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, sessionID string) ([]models.Message, error)

	// SaveTurn persists the session row and the turn's messages atomically.
	SaveTurn(ctx context.Context, session *models.Session, msgs ...*models.Message) error

	// CreateEvaluationOnce inserts the evaluation unless one already exists
	// for the session, in which case the existing row is returned and
	// created is false. This is the per-session finalize guard.
	CreateEvaluationOnce(ctx context.Context, eval *models.Evaluation) (result *models.Evaluation, created bool, err error)
	GetEvaluation(ctx context.Context, sessionID string) (*models.Evaluation, error)
	DeleteEvaluation(ctx context.Context, sessionID string) error

	ListUnexportedEvaluations(ctx context.Context, limit int) ([]models.Evaluation, error)
	MarkEvaluationsExported(ctx context.Context, sessionIDs []string, at time.Time) error
}
