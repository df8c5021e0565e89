package model

import (
	"time"

	"gorm.io/gorm"
)

type Participant struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	SessionID  uint           `json:"session_id" gorm:"not null;index"`
	UserID     *uint          `json:"user_id,omitempty" gorm:"index"` // account in the external user directory, if any
	FullName   string         `json:"full_name" gorm:"not null"`
	Email      string         `json:"email" gorm:"not null"`
	AccessCode string         `json:"access_code" gorm:"not null;uniqueIndex"` // uuid issued at registration
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
