package models

import "strings"

const (
	DefaultMaxQuestions     = 7
	MaxQuestionsCap         = 12
	MaxBehavioralTarget     = 3
	maxMessageContentLength = 20000
)

type StartSessionRequest struct {
	UserID           string `json:"user_id"`
	Track            string `json:"track"`
	CompanyStyle     string `json:"company_style"`
	Difficulty       string `json:"difficulty"`
	MaxQuestions     int    `json:"max_questions"`
	BehavioralTarget int    `json:"behavioral_questions_target"`
}

// implements the Validator interface
func (r *StartSessionRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "user_id is required"}
	}

	r.Track = strings.ToLower(strings.TrimSpace(r.Track))
	if !Track(r.Track).Valid() {
		return &ErrorResponse{
			Code:    "invalid_track",
			Message: "track must be one of: behavioral, swe_intern, swe_engineer, cybersecurity, data_science, devops_cloud, product_management",
		}
	}

	if r.CompanyStyle == "" {
		r.CompanyStyle = string(StyleGeneral)
	}
	r.CompanyStyle = strings.ToLower(strings.TrimSpace(r.CompanyStyle))
	if !CompanyStyle(r.CompanyStyle).Valid() {
		return &ErrorResponse{
			Code:    "invalid_company_style",
			Message: "company_style must be one of: general, amazon, apple, google, microsoft, meta",
		}
	}

	if r.Difficulty == "" {
		r.Difficulty = string(DifficultyMedium)
	}
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if !Difficulty(r.Difficulty).Valid() {
		return &ErrorResponse{
			Code:    "invalid_difficulty",
			Message: "difficulty must be one of: easy, medium, hard",
		}
	}

	if r.MaxQuestions == 0 {
		r.MaxQuestions = DefaultMaxQuestions
	}
	if r.MaxQuestions < 1 || r.MaxQuestions > MaxQuestionsCap {
		return &ErrorResponse{
			Code:    "invalid_max_questions",
			Message: "max_questions must be between 1 and 12",
		}
	}

	if r.BehavioralTarget < 0 || r.BehavioralTarget > MaxBehavioralTarget {
		return &ErrorResponse{
			Code:    "invalid_behavioral_target",
			Message: "behavioral_questions_target must be between 0 and 3",
		}
	}
	if r.BehavioralTarget > r.MaxQuestions {
		return &ErrorResponse{
			Code:    "invalid_behavioral_target",
			Message: "behavioral_questions_target must not exceed max_questions",
		}
	}

	return nil
}

type UserMessageRequest struct {
	Content string `json:"content"`
}

func (r *UserMessageRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return &ErrorResponse{Code: "missing_content", Message: "content is required"}
	}
	if len(r.Content) > maxMessageContentLength {
		return &ErrorResponse{Code: "content_too_long", Message: "content exceeds maximum length"}
	}
	return nil
}

type FinalizeRequest struct {
	Force bool `json:"force"`
}

// Validate always passes; Force defaults to false on an empty body.
func (r *FinalizeRequest) Validate() error { return nil }
