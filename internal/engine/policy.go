package engine

import "mockmate/interview/internal/models"

// BehavioralPolicy decides where behavioral slots land in the question
// order. The exact interleaving is configuration, not hardcoded sequence.
type BehavioralPolicy string

const (
	PolicyFrontLoaded BehavioralPolicy = "front"
	PolicyBackLoaded  BehavioralPolicy = "back"
	PolicyInterleaved BehavioralPolicy = "interleaved"
)

func (p BehavioralPolicy) Valid() bool {
	switch p {
	case PolicyFrontLoaded, PolicyBackLoaded, PolicyInterleaved:
		return true
	}
	return false
}

// nextIsBehavioral decides whether the next question slot should draw from
// the behavioral pool under the given policy. Once the behavioral target is
// met, remaining slots always come from the technical pool.
func nextIsBehavioral(policy BehavioralPolicy, s *models.Session) bool {
	remaining := s.BehavioralTarget - s.BehavioralAsked
	if remaining <= 0 {
		return false
	}
	switch policy {
	case PolicyBackLoaded:
		slotsLeft := s.MaxQuestions - s.QuestionsAsked
		return slotsLeft <= remaining
	case PolicyInterleaved:
		return s.BehavioralAsked*2 <= s.QuestionsAsked
	default: // front-loaded
		return true
	}
}
