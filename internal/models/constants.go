package models

// Track is the interview domain a session is conducted in.
type Track string

const (
	TrackBehavioral        Track = "behavioral"
	TrackSWEIntern         Track = "swe_intern"
	TrackSWEEngineer       Track = "swe_engineer"
	TrackCybersecurity     Track = "cybersecurity"
	TrackDataScience       Track = "data_science"
	TrackDevOpsCloud       Track = "devops_cloud"
	TrackProductManagement Track = "product_management"
)

// CompanyStyle flavors question selection; "general" is the fallback pool.
type CompanyStyle string

const (
	StyleGeneral   CompanyStyle = "general"
	StyleAmazon    CompanyStyle = "amazon"
	StyleApple     CompanyStyle = "apple"
	StyleGoogle    CompanyStyle = "google"
	StyleMicrosoft CompanyStyle = "microsoft"
	StyleMeta      CompanyStyle = "meta"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Stage is a phase of the interview state machine. Stages only move
// forward through the transition table in internal/engine; the single
// permitted regression is an explicit session reset.
type Stage string

const (
	StageIntro            Stage = "intro"
	StageWarmup           Stage = "warmup"
	StageWarmupBehavioral Stage = "warmup_behavioral"
	StageMain             Stage = "main"
	StageBehavioral       Stage = "behavioral"
	StageWrapup           Stage = "wrapup"
	StageDone             Stage = "done"
)

// Role is the author of a transcript message.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleStudent     Role = "student"
	RoleSystem      Role = "system"
)

// Intent is the classified purpose of a student utterance.
type Intent string

const (
	IntentClarification      Intent = "clarification"
	IntentReciprocalQuestion Intent = "reciprocal_question"
	IntentContinuation       Intent = "continuation"
	IntentSubstantiveAnswer  Intent = "substantive_answer"
	IntentOffTopic           Intent = "off_topic"
)

// TagBehavioral marks a question as behavioral regardless of which
// track/company folder it was loaded from.
const TagBehavioral = "behavioral"

var validTracks = map[Track]bool{
	TrackBehavioral:        true,
	TrackSWEIntern:         true,
	TrackSWEEngineer:       true,
	TrackCybersecurity:     true,
	TrackDataScience:       true,
	TrackDevOpsCloud:       true,
	TrackProductManagement: true,
}

var validStyles = map[CompanyStyle]bool{
	StyleGeneral:   true,
	StyleAmazon:    true,
	StyleApple:     true,
	StyleGoogle:    true,
	StyleMicrosoft: true,
	StyleMeta:      true,
}

var validDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

func (t Track) Valid() bool        { return validTracks[t] }
func (s CompanyStyle) Valid() bool { return validStyles[s] }
func (d Difficulty) Valid() bool   { return validDifficulties[d] }

// Raise returns the next difficulty tier up, capped at hard.
func (d Difficulty) Raise() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	default:
		return DifficultyHard
	}
}

// Lower returns the next difficulty tier down, floored at easy.
func (d Difficulty) Lower() Difficulty {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyEasy
	default:
		return DifficultyEasy
	}
}
