package repository

import (
	"context"

	"authgate/internal/entity"

	"gorm.io/gorm"
)

// SignupRepository creates the user and its first OTP atomically so a
// failure cannot leave an unverified account with no outstanding code.
type SignupRepository interface {
	CreateUserWithOTP(ctx context.Context, user *entity.User, otp *entity.OTP) error
}

type signupRepository struct {
	db *gorm.DB
}

func NewSignupRepository(db *gorm.DB) SignupRepository {
	return &signupRepository{db: db}
}

func (r *signupRepository) CreateUserWithOTP(ctx context.Context, user *entity.User, otp *entity.OTP) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		otp.Email = user.Email
		return tx.Create(otp).Error
	})
}
