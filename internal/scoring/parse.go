package scoring

import (
	"encoding/json"
	"errors"
	"strings"

	"mockmate/interview/internal/models"
)

var errUnparseableRubric = errors.New("unparseable rubric output")

// rubricOutput is the JSON shape the scoring prompt asks the model for.
type rubricOutput struct {
	OverallScore int            `json:"overall_score"`
	Rubric       map[string]int `json:"rubric"`
	Strengths    []string       `json:"strengths"`
	Weaknesses   []string       `json:"weaknesses"`
	NextSteps    []string       `json:"next_steps"`
}

const maxSummaryItems = 5

// parseRubric extracts and bounds the model's evaluation JSON. Model output
// often wraps the object in a code fence or prose, so parsing starts at the
// first '{' and ends at the last '}'.
func parseRubric(raw string) (*rubricOutput, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, errUnparseableRubric
	}

	var out rubricOutput
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil, errUnparseableRubric
	}
	if out.Rubric == nil {
		return nil, errUnparseableRubric
	}
	for _, dim := range []string{
		models.DimCommunication,
		models.DimProblemSolving,
		models.DimCorrectnessReasoning,
		models.DimComplexity,
		models.DimEdgeCases,
	} {
		if _, ok := out.Rubric[dim]; !ok {
			return nil, errUnparseableRubric
		}
		out.Rubric[dim] = clamp(out.Rubric[dim], 0, 10)
	}

	out.OverallScore = clamp(out.OverallScore, 0, 100)
	out.Strengths = boundList(out.Strengths)
	out.Weaknesses = boundList(out.Weaknesses)
	out.NextSteps = boundList(out.NextSteps)
	return &out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func boundList(items []string) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > maxSummaryItems {
		items = items[:maxSummaryItems]
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
