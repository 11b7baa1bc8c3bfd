package scoring

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"mockmate/interview/internal/corpus"
	"mockmate/interview/internal/gateway"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/prompts"
	"mockmate/interview/internal/storage"
)

// Completer is the slice of the gateway the scorer needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (gateway.Result, error)
}

// Scorer turns a finished transcript into a rubric evaluation. A candidate
// who sat through a full interview must never be left with zero results, so
// degraded provider output produces a low-confidence default evaluation
// instead of an error.
type Scorer struct {
	store   storage.Store
	index   *corpus.Index
	gw      Completer
	prompts prompts.PromptProvider
	logger  *zap.Logger
}

func New(store storage.Store, index *corpus.Index, gw Completer, pm prompts.PromptProvider, logger *zap.Logger) *Scorer {
	return &Scorer{
		store:   store,
		index:   index,
		gw:      gw,
		prompts: pm,
		logger:  logger,
	}
}

// Score produces the session's evaluation exactly once. Duplicate calls get
// the stored result back; force deletes and recomputes. The storage-level
// CreateEvaluationOnce guard makes near-simultaneous calls converge on one
// row.
func (s *Scorer) Score(ctx context.Context, session *models.Session, force bool) (*models.Evaluation, error) {
	if force {
		if err := s.store.DeleteEvaluation(ctx, session.ID); err != nil {
			return nil, err
		}
	} else {
		existing, err := s.store.GetEvaluation(ctx, session.ID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, storage.ErrEvaluationNotFound) {
			return nil, err
		}
	}

	eval, err := s.compute(ctx, session)
	if err != nil {
		return nil, err
	}

	stored, created, err := s.store.CreateEvaluationOnce(ctx, eval)
	if err != nil {
		return nil, err
	}
	if !created {
		// another finalize won the race; its result is the session's result
		s.logger.Info("evaluation already existed, returning stored result",
			zap.String("session_id", session.ID))
	}
	return stored, nil
}

func (s *Scorer) compute(ctx context.Context, session *models.Session) (*models.Evaluation, error) {
	msgs, err := s.store.ListMessages(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.prompts.BuildPrompt("scoring", "rubric", map[string]string{
		"Track":      string(session.Track),
		"Questions":  s.questionList(msgs),
		"Transcript": renderTranscript(msgs),
	})
	if err != nil {
		return nil, err
	}

	// one internal re-request on malformed output, then degrade
	var parsed *rubricOutput
	degraded := false
	for attempt := 0; attempt < 2; attempt++ {
		result, err := s.gw.Complete(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if result.IsFallback() {
			degraded = true
			break
		}
		parsed, err = parseRubric(result.Text)
		if err == nil {
			break
		}
		s.logger.Warn("malformed rubric output",
			zap.String("session_id", session.ID),
			zap.Int("attempt", attempt+1))
	}

	if parsed == nil {
		if !degraded {
			s.logger.Warn("rubric output unparseable after retry, producing low-confidence evaluation",
				zap.String("session_id", session.ID))
		}
		return defaultEvaluation(session.ID), nil
	}

	eval := &models.Evaluation{
		SessionID:    session.ID,
		OverallScore: parsed.OverallScore,
		Rubric: models.Rubric{
			Communication:        parsed.Rubric[models.DimCommunication],
			ProblemSolving:       parsed.Rubric[models.DimProblemSolving],
			CorrectnessReasoning: parsed.Rubric[models.DimCorrectnessReasoning],
			Complexity:           parsed.Rubric[models.DimComplexity],
			EdgeCases:            parsed.Rubric[models.DimEdgeCases],
		},
		CreatedAt: time.Now().UTC(),
	}
	eval.SetSummary(parsed.Strengths, parsed.Weaknesses, parsed.NextSteps)
	return eval, nil
}

// questionList renders the questions actually asked, in order, for the
// scoring prompt.
func (s *Scorer) questionList(msgs []models.Message) string {
	var b strings.Builder
	seen := make(map[string]bool)
	n := 0
	for _, m := range msgs {
		if m.Role != models.RoleInterviewer || m.CurrentQuestionID == nil || seen[*m.CurrentQuestionID] {
			continue
		}
		seen[*m.CurrentQuestionID] = true
		q, ok := s.index.ByID(*m.CurrentQuestionID)
		if !ok {
			continue
		}
		n++
		b.WriteString(strings.TrimSpace(q.Title))
		b.WriteString(" (")
		b.WriteString(string(q.Difficulty))
		b.WriteString("): ")
		b.WriteString(strings.TrimSpace(q.Prompt))
		b.WriteString("\n")
	}
	if n == 0 {
		return "(no questions were asked)"
	}
	return b.String()
}

func renderTranscript(msgs []models.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

// defaultEvaluation is the low-confidence passthrough rubric served when the
// provider is degraded or its output stays unparseable.
func defaultEvaluation(sessionID string) *models.Evaluation {
	eval := &models.Evaluation{
		SessionID:    sessionID,
		OverallScore: 50,
		Rubric: models.Rubric{
			Communication:        5,
			ProblemSolving:       5,
			CorrectnessReasoning: 5,
			Complexity:           5,
			EdgeCases:            5,
		},
		LowConfidence: true,
		CreatedAt:     time.Now().UTC(),
	}
	eval.SetSummary(
		[]string{"Completed the full interview."},
		[]string{"Automated scoring was unavailable for this session."},
		[]string{"Request a re-evaluation once the service is back online."},
	)
	return eval
}
