package engine

import (
	"testing"

	"mockmate/interview/internal/models"
)

func TestAnswerSignals(t *testing.T) {
	hits := answerSignals("First I outline a plan, then I implement it and verify the edge cases. It works because the invariant holds.")
	for bucket, hit := range hits {
		if !hit {
			t.Fatalf("expected all buckets hit, bucket %d missing", bucket)
		}
	}

	hits = answerSignals("I really have no idea at all.")
	for bucket, hit := range hits {
		if hit {
			t.Fatalf("expected no buckets hit, bucket %d set", bucket)
		}
	}
}

func TestAnswerSignalsStructuralMarkers(t *testing.T) {
	hits := answerSignals("Here you go:\n```\nfor i := range xs {}\n```")
	if !hits[bucketSolve] {
		t.Fatalf("a code fence should count toward the solve bucket")
	}

	hits = answerSignals("The runtime is O(n log n) overall.")
	if !hits[bucketCorrectness] {
		t.Fatalf("Big-O notation should count toward the correctness bucket")
	}
}

func TestDifficultyWindow(t *testing.T) {
	if got := difficultyWindow("", "current"); len(got) != 1 || got[0] != "current" {
		t.Fatalf("expected a single-entry window without a previous answer, got %v", got)
	}
	got := difficultyWindow("previous", "current")
	if len(got) != 2 || got[0] != "previous" || got[1] != "current" {
		t.Fatalf("expected previous then current, got %v", got)
	}
}

func TestAdjustDifficulty(t *testing.T) {
	strong := "My plan is to implement an efficient algorithm and test edge cases; it is correct because the invariant holds."
	weak := "Not really certain what to do here."
	steady := "I'd implement a simple algorithm and test it."

	cases := []struct {
		name    string
		current models.Difficulty
		answers []string
		want    models.Difficulty
	}{
		{"raise on strong union", models.DifficultyEasy, []string{strong, weak}, models.DifficultyMedium},
		{"hold on two buckets", models.DifficultyMedium, []string{steady}, models.DifficultyMedium},
		{"lower on weak", models.DifficultyMedium, []string{weak, weak}, models.DifficultyEasy},
		{"raise caps at hard", models.DifficultyHard, []string{strong}, models.DifficultyHard},
		{"lower floors at easy", models.DifficultyEasy, []string{weak}, models.DifficultyEasy},
		{"empty window holds", models.DifficultyMedium, nil, models.DifficultyMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := adjustDifficulty(tc.current, tc.answers); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
