package dto

import "time"

// TestCreateDTO is for admins adding a test to the catalog.
type TestCreateDTO struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description,omitempty"`
	Category         string `json:"category,omitempty"`
	TimeLimitMinutes int    `json:"time_limit_minutes" binding:"required,min=1"`
	QuestionCount    int    `json:"question_count" binding:"required,min=1"`
}

// TestResponseDTO mirrors a catalog test.
type TestResponseDTO struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Category         string    `json:"category,omitempty"`
	TimeLimitMinutes int       `json:"time_limit_minutes"`
	QuestionCount    int       `json:"question_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionCreateDTO creates a session together with its ordered test list.
type SessionCreateDTO struct {
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description,omitempty"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	TestIDs        []uint     `json:"test_ids" binding:"required,min=1,dive,min=1"`
}

// SessionTestDTO is one test as configured within a session.
type SessionTestDTO struct {
	TestID           uint   `json:"test_id"`
	Name             string `json:"name"`
	Category         string `json:"category,omitempty"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
	QuestionCount    int    `json:"question_count"`
	Position         int    `json:"position"`
}

type SessionResponseDTO struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	ScheduledStart *time.Time       `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time       `json:"scheduled_end,omitempty"`
	Status         string           `json:"status"`
	Tests          []SessionTestDTO `json:"tests,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ParticipantRegisterDTO registers one participant into a session.
type ParticipantRegisterDTO struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	UserID   *uint  `json:"user_id"`
}

type ParticipantResponseDTO struct {
	ID         uint      `json:"id"`
	SessionID  uint      `json:"session_id"`
	UserID     *uint     `json:"user_id,omitempty"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	AccessCode string    `json:"access_code"`
	CreatedAt  time.Time `json:"created_at"`
}
