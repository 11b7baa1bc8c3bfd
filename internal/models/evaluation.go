package models

import (
	"encoding/json"
	"time"
)

// Rubric dimension names, fixed across every evaluation.
const (
	DimCommunication        = "communication"
	DimProblemSolving       = "problem_solving"
	DimCorrectnessReasoning = "correctness_reasoning"
	DimComplexity           = "complexity"
	DimEdgeCases            = "edge_cases"
)

// Rubric holds the five fixed 0-10 scored dimensions.
type Rubric struct {
	Communication        int `json:"communication"`
	ProblemSolving       int `json:"problem_solving"`
	CorrectnessReasoning int `json:"correctness_reasoning"`
	Complexity           int `json:"complexity"`
	EdgeCases            int `json:"edge_cases"`
}

// Map returns the rubric keyed by dimension name.
func (r Rubric) Map() map[string]int {
	return map[string]int{
		DimCommunication:        r.Communication,
		DimProblemSolving:       r.ProblemSolving,
		DimCorrectnessReasoning: r.CorrectnessReasoning,
		DimComplexity:           r.Complexity,
		DimEdgeCases:            r.EdgeCases,
	}
}

// Evaluation is the finalize output. At most one exists per session; an
// explicit re-finalize replaces it, never duplicates it.
type Evaluation struct {
	SessionID      string     `gorm:"primaryKey" json:"session_id"`
	OverallScore   int        `gorm:"not null" json:"overall_score"`
	Rubric         Rubric     `gorm:"embedded;embeddedPrefix:rubric_" json:"rubric"`
	StrengthsJSON  string     `gorm:"type:text" json:"-"`
	WeaknessesJSON string     `gorm:"type:text" json:"-"`
	NextStepsJSON  string     `gorm:"type:text" json:"-"`
	LowConfidence  bool       `gorm:"not null;default:false" json:"low_confidence"`
	Exported       bool       `gorm:"not null;default:false;index" json:"-"`
	ExportedAt     *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SetSummary encodes the three ordered summary lists for storage.
func (e *Evaluation) SetSummary(strengths, weaknesses, nextSteps []string) {
	e.StrengthsJSON = encodeList(strengths)
	e.WeaknessesJSON = encodeList(weaknesses)
	e.NextStepsJSON = encodeList(nextSteps)
}

// Summary decodes the stored summary lists.
func (e *Evaluation) Summary() (strengths, weaknesses, nextSteps []string) {
	return decodeList(e.StrengthsJSON), decodeList(e.WeaknessesJSON), decodeList(e.NextStepsJSON)
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	return items
}
