package entity

import (
	"time"

	"github.com/google/uuid"
)

// OTP is an outstanding email-verification code. Multiple rows may exist
// for the same email; a row is deleted the moment it is consumed.
type OTP struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Email string `gorm:"type:varchar(255);index;not null"`
	Code  string `gorm:"type:varchar(6);not null"`

	ExpiresAt time.Time

	CreatedAt time.Time
}
