package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mockmate/interview/internal/models"
)

// GormStore implements Store on top of gorm (postgres in production,
// in-memory sqlite in tests).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Session{}, &models.Message{}, &models.Evaluation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateSession(ctx context.Context, session *models.Session) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *GormStore) LoadSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return &session, nil
}

func (s *GormStore) SaveSession(ctx context.Context, session *models.Session) error {
	if err := s.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *GormStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (s *GormStore) ListMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for session %s: %w", sessionID, err)
	}
	return msgs, nil
}

// SaveTurn writes the updated session row and the turn's messages in one
// transaction so a crash cannot desynchronize the question counters from
// the transcript.
func (s *GormStore) SaveTurn(ctx context.Context, session *models.Session, msgs ...*models.Message) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, msg := range msgs {
			if err := tx.Create(msg).Error; err != nil {
				return fmt.Errorf("failed to append message: %w", err)
			}
		}
		if err := tx.Save(session).Error; err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// CreateEvaluationOnce attempts the insert and lets the primary key on
// session_id arbitrate. A losing insert, whether to an earlier finalize or
// to a concurrent one in another process, falls back to reading the row
// that won.
func (s *GormStore) CreateEvaluationOnce(ctx context.Context, eval *models.Evaluation) (*models.Evaluation, bool, error) {
	if err := s.db.WithContext(ctx).Create(eval).Error; err != nil {
		var existing models.Evaluation
		if readErr := s.db.WithContext(ctx).First(&existing, "session_id = ?", eval.SessionID).Error; readErr == nil {
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create evaluation for session %s: %w", eval.SessionID, err)
	}
	return eval, true, nil
}

func (s *GormStore) GetEvaluation(ctx context.Context, sessionID string) (*models.Evaluation, error) {
	var eval models.Evaluation
	err := s.db.WithContext(ctx).First(&eval, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEvaluationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation for session %s: %w", sessionID, err)
	}
	return &eval, nil
}

func (s *GormStore) DeleteEvaluation(ctx context.Context, sessionID string) error {
	err := s.db.WithContext(ctx).Delete(&models.Evaluation{}, "session_id = ?", sessionID).Error
	if err != nil {
		return fmt.Errorf("failed to delete evaluation for session %s: %w", sessionID, err)
	}
	return nil
}

func (s *GormStore) ListUnexportedEvaluations(ctx context.Context, limit int) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	query := s.db.WithContext(ctx).Where("exported = ?", false).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&evals).Error; err != nil {
		return nil, fmt.Errorf("failed to list unexported evaluations: %w", err)
	}
	return evals, nil
}

func (s *GormStore) MarkEvaluationsExported(ctx context.Context, sessionIDs []string, at time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.Evaluation{}).
		Where("session_id IN ?", sessionIDs).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark evaluations as exported: %w", result.Error)
	}
	return nil
}
