package intent

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mockmate/interview/internal/models"
)

var (
	errLLMUnavailable   = errors.New("llm classifier unavailable")
	errUnparseableLabel = errors.New("unparseable intent label")
)

// refineBelow is the heuristic confidence under which the LLM tier is asked
// for a second opinion.
const refineBelow = 0.75

// TieredClassifier runs the cheap heuristic first and only consults the LLM
// tier when the heuristic is unsure. The contract (intent + confidence) is
// the same regardless of which tier answered.
type TieredClassifier struct {
	heuristic Classifier
	refiner   Classifier
	logger    *zap.Logger
}

func NewTieredClassifier(heuristic, refiner Classifier, logger *zap.Logger) *TieredClassifier {
	return &TieredClassifier{heuristic: heuristic, refiner: refiner, logger: logger}
}

func (c *TieredClassifier) Classify(ctx context.Context, stage models.Stage, text string) (Result, error) {
	result, err := c.heuristic.Classify(ctx, stage, text)
	if err != nil {
		return Result{}, err
	}
	if result.Confidence >= refineBelow || c.refiner == nil {
		return result, nil
	}

	refined, err := c.refiner.Classify(ctx, stage, text)
	if err != nil {
		// degraded provider: the heuristic opinion stands
		c.logger.Debug("intent refinement unavailable, keeping heuristic result",
			zap.Error(err), zap.String("intent", string(result.Intent)))
		return result, nil
	}
	return refined, nil
}
