package engine

import (
	"regexp"
	"strings"

	"mockmate/interview/internal/models"
)

// Adaptive difficulty works off lightweight structural signals in the
// student's answer text. It is deterministic and never calls the provider.

type signalBucket int

const (
	bucketPlan signalBucket = iota
	bucketSolve
	bucketValidate
	bucketCorrectness
	bucketCount
)

var bucketKeywords = map[signalBucket][]string{
	bucketPlan: {
		"plan", "approach", "first i", "first, i", "outline", "break down",
		"break it down", "step by step", "strategy", "start by",
	},
	bucketSolve: {
		"solve", "implement", "optimize", "optimise", "efficient",
		"improve", "reduce", "algorithm", "data structure", "trade-off", "tradeoff",
	},
	bucketValidate: {
		"edge case", "edge-case", "test", "validate", "verify", "corner case",
		"boundary", "empty input", "null", "nil", "overflow",
	},
	bucketCorrectness: {
		"correct", "prove", "invariant", "guarantee", "because", "therefore",
		"holds", "works because", "sound",
	},
}

var (
	codeFenceRe = regexp.MustCompile("```")
	bigORe      = regexp.MustCompile(`\bO\(\s*[^)]+\s*\)`)
)

// answerSignals reports which of the four buckets an answer hits. A fenced
// code block counts toward solve; Big-O notation toward correctness.
func answerSignals(text string) [bucketCount]bool {
	var hits [bucketCount]bool
	lower := strings.ToLower(text)

	for bucket, keywords := range bucketKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits[bucket] = true
				break
			}
		}
	}
	if codeFenceRe.MatchString(text) {
		hits[bucketSolve] = true
	}
	if bigORe.MatchString(text) {
		hits[bucketCorrectness] = true
	}
	return hits
}

// difficultyWindow builds the signal window for one adjustment: the previous
// accepted answer, when there is one, plus the current one.
func difficultyWindow(previous, current string) []string {
	if previous == "" {
		return []string{current}
	}
	return []string{previous, current}
}

// adjustDifficulty unions the signals of the last one or two answers:
// >=3 of 4 buckets raises one tier (capped at hard), <=1 lowers one tier
// (floored at easy), otherwise hold.
func adjustDifficulty(current models.Difficulty, recentAnswers []string) models.Difficulty {
	if len(recentAnswers) == 0 {
		return current
	}

	var union [bucketCount]bool
	for _, answer := range recentAnswers {
		hits := answerSignals(answer)
		for i := range hits {
			union[i] = union[i] || hits[i]
		}
	}

	n := 0
	for _, hit := range union {
		if hit {
			n++
		}
	}

	switch {
	case n >= 3:
		return current.Raise()
	case n <= 1:
		return current.Lower()
	default:
		return current
	}
}
