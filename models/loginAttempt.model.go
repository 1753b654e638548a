package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginAttempt is the audit trail of admin/author logins
type LoginAttempt struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index"`
	Email     string    `json:"email"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Succeeded bool      `json:"succeeded"`
	Timestamp time.Time `json:"timestamp"`
}
