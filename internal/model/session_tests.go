package model

import (
	"time"
)

// SessionTest links a catalog test into a session. A progress record may only
// be started for (session, test) pairs present in this table.
type SessionTest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID uint      `json:"session_id" gorm:"not null;index:idx_session_test,unique"`
	TestID    uint      `json:"test_id" gorm:"not null;index:idx_session_test,unique"`
	Test      Test      `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Position  int       `json:"position" gorm:"not null"` // order the tests are presented in
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
