package model

import "time"

// ResendRequest tracks verification mail resends so one address can't be
// flooded. After MaxResendsPerDay attempts the cooldown stretches to a day.
type ResendRequest struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID     string `gorm:"uniqueIndex;size:16;not null"`
	Attempts   int    `gorm:"not null"`
	LastResend time.Time
	Cooldown   time.Time
}

const MaxResendsPerDay = 5
