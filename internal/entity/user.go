package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is the identity record. PasswordHash is nil for accounts created
// through an OAuth provider.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone        *string   `gorm:"type:varchar(20);uniqueIndex"`
	PasswordHash *string   `gorm:"type:text"`
	Role         UserRole  `gorm:"type:user_role;default:'user';not null"`

	IsActive   bool `gorm:"default:true;not null"`
	IsVerified bool `gorm:"default:false;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	RefreshTokens []RefreshToken
}
