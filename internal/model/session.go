package model

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Name           string         `json:"name" gorm:"not null"`
	Description    string         `json:"description,omitempty"`
	ScheduledStart *time.Time     `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time     `json:"scheduled_end,omitempty"`
	Status         string         `json:"status" gorm:"default:'scheduled'"` // "scheduled", "active", "closed"
	Tests          []SessionTest  `json:"tests,omitempty" gorm:"foreignKey:SessionID"`
	Participants   []Participant  `json:"participants,omitempty" gorm:"foreignKey:SessionID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
