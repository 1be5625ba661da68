package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one logical session: one row per login event/device.
// The signed token string is stored verbatim and matched exactly.
type RefreshToken struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Token string `gorm:"type:text;uniqueIndex;not null"`

	ExpiresAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
