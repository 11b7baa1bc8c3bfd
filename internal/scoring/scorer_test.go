package scoring

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mockmate/interview/internal/corpus"
	"mockmate/interview/internal/gateway"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/prompts"
	"mockmate/interview/internal/storage"
)

const validRubricReply = "Here is the evaluation:\n```json\n" +
	`{"overall_score": 120, "rubric": {"communication": 8, "problem_solving": 7,` +
	` "correctness_reasoning": 9, "complexity": 11, "edge_cases": -2},` +
	` "strengths": ["clear thinking"], "weaknesses": ["rushed at the end"],` +
	` "next_steps": ["practice complexity analysis"]}` + "\n```"

// scriptedCompleter replays a fixed sequence of gateway results, repeating
// the last one once the script runs out.
type scriptedCompleter struct {
	replies []gateway.Result
	calls   int
}

func (s *scriptedCompleter) Complete(_ context.Context, _ string) (gateway.Result, error) {
	s.calls++
	i := s.calls - 1
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	return s.replies[i], nil
}

func providerReply(text string) gateway.Result {
	return gateway.Result{Text: text, Source: gateway.SourceProvider}
}

func fallbackReply() gateway.Result {
	return gateway.Result{Text: gateway.FallbackText, Source: gateway.SourceFallback}
}

func newTestScorer(t *testing.T, gw Completer) (*Scorer, *storage.GormStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:scoring%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	store, err := storage.NewGormStore(db)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	pm, err := prompts.NewManager()
	if err != nil {
		t.Fatalf("failed to load prompt templates: %v", err)
	}
	return New(store, corpus.NewIndex(nil), gw, pm, zap.NewNop()), store
}

func TestScoreParsesAndClampsRubric(t *testing.T) {
	gw := &scriptedCompleter{replies: []gateway.Result{providerReply(validRubricReply)}}
	scorer, _ := newTestScorer(t, gw)
	session := &models.Session{ID: "s1", Track: models.TrackSWEIntern}

	eval, err := scorer.Score(context.Background(), session, false)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if eval.OverallScore != 100 {
		t.Fatalf("overall score should clamp to 100, got %d", eval.OverallScore)
	}
	if eval.Rubric.Complexity != 10 {
		t.Fatalf("complexity should clamp to 10, got %d", eval.Rubric.Complexity)
	}
	if eval.Rubric.EdgeCases != 0 {
		t.Fatalf("edge_cases should clamp to 0, got %d", eval.Rubric.EdgeCases)
	}
	if eval.LowConfidence {
		t.Fatalf("parsed rubric must not be low confidence")
	}
	strengths, _, nextSteps := eval.Summary()
	if len(strengths) != 1 || strengths[0] != "clear thinking" {
		t.Fatalf("unexpected strengths: %v", strengths)
	}
	if len(nextSteps) != 1 {
		t.Fatalf("unexpected next steps: %v", nextSteps)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	gw := &scriptedCompleter{replies: []gateway.Result{providerReply(validRubricReply)}}
	scorer, _ := newTestScorer(t, gw)
	session := &models.Session{ID: "s2", Track: models.TrackSWEIntern}

	first, err := scorer.Score(context.Background(), session, false)
	if err != nil {
		t.Fatalf("first score failed: %v", err)
	}
	second, err := scorer.Score(context.Background(), session, false)
	if err != nil {
		t.Fatalf("second score failed: %v", err)
	}
	if gw.calls != 1 {
		t.Fatalf("duplicate score must not call the provider again, got %d calls", gw.calls)
	}
	if first.OverallScore != second.OverallScore || first.SessionID != second.SessionID {
		t.Fatalf("duplicate score returned a different evaluation")
	}
}

func TestScoreForceRecomputes(t *testing.T) {
	gw := &scriptedCompleter{replies: []gateway.Result{providerReply(validRubricReply)}}
	scorer, _ := newTestScorer(t, gw)
	session := &models.Session{ID: "s3", Track: models.TrackSWEIntern}

	if _, err := scorer.Score(context.Background(), session, false); err != nil {
		t.Fatalf("first score failed: %v", err)
	}
	if _, err := scorer.Score(context.Background(), session, true); err != nil {
		t.Fatalf("forced score failed: %v", err)
	}
	if gw.calls != 2 {
		t.Fatalf("force must recompute, got %d provider calls", gw.calls)
	}
}

func TestScoreRetriesOnceOnMalformedOutput(t *testing.T) {
	gw := &scriptedCompleter{replies: []gateway.Result{
		providerReply("I think the candidate did fine overall."),
		providerReply(validRubricReply),
	}}
	scorer, _ := newTestScorer(t, gw)
	session := &models.Session{ID: "s4", Track: models.TrackSWEIntern}

	eval, err := scorer.Score(context.Background(), session, false)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if gw.calls != 2 {
		t.Fatalf("expected one re-request, got %d calls", gw.calls)
	}
	if eval.LowConfidence {
		t.Fatalf("re-requested rubric must not be low confidence")
	}
}

func TestScoreDegradesToLowConfidenceDefault(t *testing.T) {
	cases := []struct {
		name string
		gw   *scriptedCompleter
	}{
		{"provider fallback", &scriptedCompleter{replies: []gateway.Result{fallbackReply()}}},
		{"unparseable twice", &scriptedCompleter{replies: []gateway.Result{
			providerReply("no json here"),
			providerReply("still no json"),
		}}},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer, _ := newTestScorer(t, tc.gw)
			session := &models.Session{ID: fmt.Sprintf("deg-%d", i), Track: models.TrackSWEIntern}

			eval, err := scorer.Score(context.Background(), session, false)
			if err != nil {
				t.Fatalf("degraded score must not error: %v", err)
			}
			if !eval.LowConfidence {
				t.Fatalf("expected low-confidence evaluation")
			}
			if eval.OverallScore != 50 {
				t.Fatalf("expected neutral overall score 50, got %d", eval.OverallScore)
			}
			if eval.Rubric.Communication != 5 || eval.Rubric.EdgeCases != 5 {
				t.Fatalf("expected neutral rubric, got %+v", eval.Rubric)
			}
		})
	}
}

func TestParseRubricRejectsIncompleteOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json", "the candidate was great"},
		{"missing dimension", `{"overall_score": 80, "rubric": {"communication": 8}}`},
		{"missing rubric", `{"overall_score": 80}`},
		{"broken json", `{"overall_score": 80, "rubric": {`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseRubric(tc.raw); err == nil {
				t.Fatalf("expected parse error for %q", tc.raw)
			}
		})
	}
}

func TestParseRubricBoundsSummaryLists(t *testing.T) {
	raw := `{"overall_score": 70, "rubric": {"communication": 7, "problem_solving": 7,
		"correctness_reasoning": 7, "complexity": 7, "edge_cases": 7},
		"strengths": ["a", "b", "c", "d", "e", "f", "g"],
		"weaknesses": ["  padded  ", ""],
		"next_steps": null}`

	out, err := parseRubric(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(out.Strengths) != 5 {
		t.Fatalf("strengths should be capped at 5, got %d", len(out.Strengths))
	}
	if len(out.Weaknesses) != 1 || out.Weaknesses[0] != "padded" {
		t.Fatalf("weaknesses should be trimmed and pruned, got %v", out.Weaknesses)
	}
	if out.NextSteps == nil || len(out.NextSteps) != 0 {
		t.Fatalf("null list should become empty, got %v", out.NextSteps)
	}
}
