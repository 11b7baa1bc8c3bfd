package models

import "time"

// Session is one interview attempt. It is created by the session handler,
// mutated exclusively by the conversation engine on each turn, and becomes
// terminal at StageDone.
type Session struct {
	ID                   string       `gorm:"primaryKey" json:"id"`
	UserID               string       `gorm:"index;not null" json:"user_id"`
	Track                Track        `gorm:"not null" json:"track"`
	CompanyStyle         CompanyStyle `gorm:"not null" json:"company_style"`
	Difficulty           Difficulty   `gorm:"not null" json:"difficulty"`
	Stage                Stage        `gorm:"not null" json:"stage"`
	CurrentQuestionID    *string      `json:"current_question_id,omitempty"`
	QuestionsAsked       int          `gorm:"not null;default:0" json:"questions_asked_count"`
	MaxQuestions         int          `gorm:"not null" json:"max_questions"`
	BehavioralTarget     int          `gorm:"not null;default:0" json:"behavioral_questions_target"`
	BehavioralAsked      int          `gorm:"not null;default:0" json:"behavioral_questions_asked"`
	FollowupAsked        bool         `gorm:"not null;default:false" json:"-"`
	DifficultyAdjustedAt int          `gorm:"not null;default:0" json:"-"`
	LastAnswer           string       `gorm:"type:text" json:"-"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// Message is one transcript entry. Messages are append-only and strictly
// ordered by creation; nothing in the engine mutates or deletes a past one.
type Message struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	SessionID         string    `gorm:"index;not null" json:"session_id"`
	Role              Role      `gorm:"not null" json:"role"`
	Content           string    `gorm:"type:text;not null" json:"content"`
	CurrentQuestionID *string   `json:"current_question_id,omitempty"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}
