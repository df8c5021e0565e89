package model

import (
	"time"
)

// ProgressStatus enumerates the states of a participant's attempt at a test.
type ProgressStatus string

const (
	// ProgressNotStarted is never stored; it is synthesized for session tests
	// the participant has no record for yet.
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	// ProgressCompleted is the terminal state reached by an explicit submit.
	ProgressCompleted ProgressStatus = "completed"
	// ProgressAutoCompleted is the terminal state reached when the time limit
	// elapses before the participant submits.
	ProgressAutoCompleted ProgressStatus = "auto_completed"
)

// Terminal reports whether no further transition is allowed from s.
func (s ProgressStatus) Terminal() bool {
	return s == ProgressCompleted || s == ProgressAutoCompleted
}

// TestProgress tracks one participant's attempt at one test within one
// session. The (participant, session, test) triple is unique, which is what
// makes Start idempotent: a concurrent second insert hits the index and the
// existing row is returned instead.
//
// TimeLimitMinutes and TotalQuestions are copies of the catalog values taken
// when the attempt started. ExpectedCompletionAt is derived from them once and
// is the value CompletedAt is pinned to on every auto-completion, regardless
// of when the expiry was actually detected.
type TestProgress struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	ParticipantID        uint           `json:"participant_id" gorm:"not null;index:idx_progress_triple,unique"`
	SessionID            uint           `json:"session_id" gorm:"not null;index:idx_progress_triple,unique"`
	TestID               uint           `json:"test_id" gorm:"not null;index:idx_progress_triple,unique"`
	UserID               *uint          `json:"user_id,omitempty" gorm:"index"`
	Status               ProgressStatus `json:"status" gorm:"not null;default:'in_progress'"`
	StartedAt            *time.Time     `json:"started_at,omitempty"`
	CompletedAt          *time.Time     `json:"completed_at,omitempty"`
	ExpectedCompletionAt *time.Time     `json:"expected_completion_at,omitempty"`
	AnsweredQuestions    int            `json:"answered_questions" gorm:"not null;default:0"`
	TotalQuestions       int            `json:"total_questions" gorm:"not null"`
	TimeLimitMinutes     int            `json:"time_limit_minutes" gorm:"not null"`
	TimeSpentSeconds     int            `json:"time_spent_seconds" gorm:"not null;default:0"`
	IsAutoCompleted      bool           `json:"is_auto_completed" gorm:"not null;default:false"`
	LastActivityAt       time.Time      `json:"last_activity_at"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}
