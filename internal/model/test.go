package model

import (
	"time"

	"gorm.io/gorm"
)

// Test is a catalog entry for one psychometric test. TimeLimitMinutes and
// QuestionCount are snapshotted into TestProgress when a participant starts,
// so editing a test never affects attempts already in flight.
type Test struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Name             string         `json:"name" gorm:"not null;uniqueIndex"` // "Big Five Inventory"
	Description      string         `json:"description,omitempty"`
	Category         string         `json:"category,omitempty"` // "personality", "cognitive", "aptitude"
	TimeLimitMinutes int            `json:"time_limit_minutes" gorm:"not null"`
	QuestionCount    int            `json:"question_count" gorm:"not null"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
