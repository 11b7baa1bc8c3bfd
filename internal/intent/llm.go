package intent

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"mockmate/interview/internal/gateway"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/prompts"
)

// Completer is the slice of the gateway the LLM tier needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (gateway.Result, error)
}

// LLMClassifier asks the provider for a single intent label. It is the
// refinement tier; the gateway's fallback semantics mean it degrades to an
// error (not a crash) when the provider is down.
type LLMClassifier struct {
	gw      Completer
	prompts prompts.PromptProvider
	logger  *zap.Logger
}

func NewLLMClassifier(gw Completer, pm prompts.PromptProvider, logger *zap.Logger) *LLMClassifier {
	return &LLMClassifier{gw: gw, prompts: pm, logger: logger}
}

var labelIntents = map[string]models.Intent{
	"clarification":       models.IntentClarification,
	"reciprocal_question": models.IntentReciprocalQuestion,
	"continuation":        models.IntentContinuation,
	"substantive_answer":  models.IntentSubstantiveAnswer,
	"off_topic":           models.IntentOffTopic,
}

func (c *LLMClassifier) Classify(ctx context.Context, stage models.Stage, text string) (Result, error) {
	prompt, err := c.prompts.BuildPrompt("intent", "classify", map[string]string{
		"Stage":   string(stage),
		"Message": text,
	})
	if err != nil {
		return Result{}, err
	}

	result, err := c.gw.Complete(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	if result.IsFallback() {
		// the fallback text is not a label; let the caller keep its
		// heuristic opinion
		return Result{}, errLLMUnavailable
	}

	label := strings.ToLower(strings.TrimSpace(result.Text))
	label = strings.Trim(label, "\"'.`")
	if intent, ok := labelIntents[label]; ok {
		return Result{Intent: intent, Confidence: 0.95, Tier: "llm"}, nil
	}

	c.logger.Warn("unparseable intent label from provider", zap.String("label", label))
	return Result{}, errUnparseableLabel
}
