package intent

import (
	"context"
	"regexp"
	"strings"

	"mockmate/interview/internal/models"
)

// The cheap deterministic tier. It never calls the provider, so it is the
// first (and during provider outages, the only) opinion on every turn.
type HeuristicClassifier struct{}

func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

var (
	clarificationRe = regexp.MustCompile(`(?i)\b(repeat|say (that|it) again|what was the question|one more time|come again|rephrase|didn'?t (catch|hear|get) (that|it|the question)|can you (repeat|clarify)|what do you mean)\b`)

	reciprocalRe = regexp.MustCompile(`(?i)\b(how (about|is|are|was) (you|your|yours)|what about you|and (you|yours|yourself)\b|how('s| is) your day|yourself\s*\?)`)

	continuationRe = regexp.MustCompile(`(?i)\b(i (just )?(asked|said|mentioned|told)( you)?|as i (said|mentioned|noted)|like i said|i was (asking|saying)|going back to (what|my))\b`)

	offTopicRe = regexp.MustCompile(`(?i)\b(weather|lunch|dinner|football|soccer|basketball|movie|netflix|vacation|weekend plans|what time is it|unrelated question)\b`)
)

const (
	ruleConfidence    = 0.9
	defaultConfidence = 0.8
	lowConfidence     = 0.4

	// below this length there is not much signal to call it an answer
	shortAnswerRunes = 15
)

func (c *HeuristicClassifier) Classify(_ context.Context, stage models.Stage, text string) (Result, error) {
	trimmed := strings.TrimSpace(text)

	switch {
	case clarificationRe.MatchString(trimmed):
		return Result{Intent: models.IntentClarification, Confidence: ruleConfidence, Tier: "heuristic"}, nil
	case strings.Contains(trimmed, "?") && reciprocalRe.MatchString(trimmed):
		return Result{Intent: models.IntentReciprocalQuestion, Confidence: ruleConfidence, Tier: "heuristic"}, nil
	case continuationRe.MatchString(trimmed):
		return Result{Intent: models.IntentContinuation, Confidence: ruleConfidence, Tier: "heuristic"}, nil
	case offTopicRe.MatchString(trimmed):
		return Result{Intent: models.IntentOffTopic, Confidence: 0.7, Tier: "heuristic"}, nil
	}

	confidence := defaultConfidence
	if len([]rune(trimmed)) < shortAnswerRunes {
		confidence = lowConfidence
	}
	return Result{Intent: models.IntentSubstantiveAnswer, Confidence: confidence, Tier: "heuristic"}, nil
}
