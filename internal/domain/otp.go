package domain

import "time"

// OneTimeCode is a 6-digit email verification code. At most one live code
// exists per email: issuing a new one deletes any previous codes first.
type OneTimeCode struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"index;size:191;not null"`
	Code      string    `gorm:"size:6;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (OneTimeCode) TableName() string { return "otps" }

func (c *OneTimeCode) Expired(now time.Time) bool { return !c.ExpiresAt.After(now) }

type OneTimeCodeRepository interface {
	// Replace deletes all codes for the email and stores the new one.
	Replace(c *OneTimeCode) error
	// Consume finds a live (email, code) pair and deletes it. Returns
	// nil, nil when no live code matches.
	Consume(email, code string, now time.Time) (*OneTimeCode, error)
}
