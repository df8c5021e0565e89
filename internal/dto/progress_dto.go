package dto

import "time"

// TestProgressDTO is the response shape for every progress operation.
// TimeRemaining, ProgressPercentage and IsTimeExpired are computed from the
// persisted record on each response; they are never stored.
type TestProgressDTO struct {
	ID                   uint       `json:"id,omitempty"`
	ParticipantID        uint       `json:"participant_id"`
	SessionID            uint       `json:"session_id"`
	TestID               uint       `json:"test_id"`
	TestName             string     `json:"test_name,omitempty"`
	Status               string     `json:"status"`
	StartedAt            *time.Time `json:"started_at,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	ExpectedCompletionAt *time.Time `json:"expected_completion_at,omitempty"`
	AnsweredQuestions    int        `json:"answered_questions"`
	TotalQuestions       int        `json:"total_questions"`
	TimeLimitMinutes     int        `json:"time_limit_minutes"`
	TimeSpentSeconds     int        `json:"time_spent_seconds"`
	IsAutoCompleted      bool       `json:"is_auto_completed"`
	LastActivityAt       *time.Time `json:"last_activity_at,omitempty"`

	TimeRemaining      int  `json:"time_remaining"` // seconds, 0 once expired
	ProgressPercentage int  `json:"progress_percentage"`
	IsTimeExpired      bool `json:"is_time_expired"`
}

// ProgressUpdateDTO is the periodic heartbeat while a participant is taking a
// test. Both fields are optional; absent fields leave the stored value alone.
type ProgressUpdateDTO struct {
	AnsweredQuestions *int `json:"answered_questions" binding:"omitempty,min=0"`
	TimeSpentSeconds  *int `json:"time_spent_seconds" binding:"omitempty,min=0"`
}

// ProgressCompleteDTO is the explicit submission of a test.
type ProgressCompleteDTO struct {
	AnsweredQuestions *int `json:"answered_questions" binding:"omitempty,min=0"`
}
