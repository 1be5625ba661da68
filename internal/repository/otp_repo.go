package repository

import (
	"context"
	"errors"

	"authgate/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	FindByEmailAndCode(ctx context.Context, email string, code string) (*entity.OTP, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LatestByEmail(ctx context.Context, email string) (*entity.OTP, error)
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

// FindByEmailAndCode matches regardless of expiry; the caller decides
// between "not found" and "expired".
func (r *otpRepository) FindByEmailAndCode(ctx context.Context, email string, code string) (*entity.OTP, error) {
	var otp entity.OTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ?", email, code).
		First(&otp).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.OTP{}).
		Error
}

func (r *otpRepository) LatestByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	var otp entity.OTP
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&otp).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}
