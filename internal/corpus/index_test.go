package corpus

import (
	"errors"
	"testing"

	"mockmate/interview/internal/models"
)

func q(id string, track models.Track, style models.CompanyStyle, difficulty models.Difficulty, tags ...string) models.Question {
	return models.Question{
		ID:           id,
		Track:        track,
		CompanyStyle: style,
		Difficulty:   difficulty,
		Title:        "q " + id,
		Prompt:       "prompt " + id,
		Tags:         tags,
	}
}

func TestCoverageFallbackToGeneral(t *testing.T) {
	ix := NewIndex([]models.Question{
		q("g1", models.TrackSWEIntern, models.StyleGeneral, models.DifficultyHard),
		q("g2", models.TrackSWEIntern, models.StyleGeneral, models.DifficultyHard),
		q("a1", models.TrackSWEIntern, models.StyleAmazon, models.DifficultyEasy),
	})

	cov := ix.Coverage(models.TrackSWEIntern, models.StyleAmazon, models.DifficultyHard, false)
	if cov.Count != 0 {
		t.Fatalf("expected exact count 0, got %d", cov.Count)
	}
	if cov.FallbackGeneralCount != 2 {
		t.Fatalf("expected fallback general count 2, got %d", cov.FallbackGeneralCount)
	}

	selected, err := ix.Select(models.TrackSWEIntern, models.StyleAmazon, models.DifficultyHard, nil)
	if err != nil {
		t.Fatalf("expected general fallback, got error: %v", err)
	}
	if selected.CompanyStyle != models.StyleGeneral {
		t.Fatalf("expected general-style question, got %s", selected.CompanyStyle)
	}
}

func TestSelectExcludesAskedQuestions(t *testing.T) {
	ix := NewIndex([]models.Question{
		q("a", models.TrackSWEEngineer, models.StyleGoogle, models.DifficultyMedium),
		q("b", models.TrackSWEEngineer, models.StyleGoogle, models.DifficultyMedium),
	})

	first, err := ix.Select(models.TrackSWEEngineer, models.StyleGoogle, models.DifficultyMedium, nil)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	second, err := ix.Select(models.TrackSWEEngineer, models.StyleGoogle, models.DifficultyMedium, map[string]bool{first.ID: true})
	if err != nil {
		t.Fatalf("second select failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("excluded question was selected again: %s", first.ID)
	}

	_, err = ix.Select(models.TrackSWEEngineer, models.StyleGoogle, models.DifficultyMedium,
		map[string]bool{first.ID: true, second.ID: true})
	if !errors.Is(err, ErrNoCoverage) {
		t.Fatalf("expected ErrNoCoverage when all excluded, got %v", err)
	}
}

func TestSelectSkipsBehavioralQuestions(t *testing.T) {
	ix := NewIndex([]models.Question{
		q("beh", models.TrackSWEIntern, models.StyleGeneral, models.DifficultyEasy, models.TagBehavioral),
		q("tech", models.TrackSWEIntern, models.StyleGeneral, models.DifficultyEasy),
	})

	selected, err := ix.Select(models.TrackSWEIntern, models.StyleGeneral, models.DifficultyEasy, nil)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if selected.IsBehavioral() {
		t.Fatalf("technical selection returned a behavioral question")
	}
}

func TestSelectBehavioralPrefersStyleThenGeneral(t *testing.T) {
	ix := NewIndex([]models.Question{
		q("any", models.TrackBehavioral, models.StyleMeta, models.DifficultyEasy, models.TagBehavioral),
		q("gen", models.TrackBehavioral, models.StyleGeneral, models.DifficultyMedium, models.TagBehavioral),
		q("amz", models.TrackBehavioral, models.StyleAmazon, models.DifficultyMedium, models.TagBehavioral),
	})

	selected, err := ix.SelectBehavioral(models.StyleAmazon, models.DifficultyMedium, nil)
	if err != nil {
		t.Fatalf("behavioral select failed: %v", err)
	}
	if selected.ID != "amz" {
		t.Fatalf("expected style match amz, got %s", selected.ID)
	}

	selected, err = ix.SelectBehavioral(models.StyleAmazon, models.DifficultyMedium, map[string]bool{"amz": true})
	if err != nil {
		t.Fatalf("behavioral select failed: %v", err)
	}
	if selected.ID != "gen" {
		t.Fatalf("expected general fallback gen, got %s", selected.ID)
	}

	// behavioral questions count even from unrelated folders, as long as tagged
	selected, err = ix.SelectBehavioral(models.StyleAmazon, models.DifficultyMedium,
		map[string]bool{"amz": true, "gen": true})
	if err != nil {
		t.Fatalf("behavioral select failed: %v", err)
	}
	if selected.ID != "any" {
		t.Fatalf("expected any-folder fallback, got %s", selected.ID)
	}
}

func TestByID(t *testing.T) {
	ix := NewIndex([]models.Question{
		q("x", models.TrackDataScience, models.StyleGeneral, models.DifficultyEasy),
	})
	if _, ok := ix.ByID("x"); !ok {
		t.Fatalf("expected question x to be indexed")
	}
	if _, ok := ix.ByID("missing"); ok {
		t.Fatalf("did not expect missing question to resolve")
	}
}
