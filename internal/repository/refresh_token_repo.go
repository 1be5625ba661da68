package repository

import (
	"context"
	"errors"
	"time"

	"authgate/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository is the session store: one row per login event.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	FindValid(ctx context.Context, token string) (*entity.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	CleanupExpired(ctx context.Context) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, t *entity.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindValid matches the exact token string and filters expired rows at
// read time.
func (r *refreshTokenRepository) FindValid(ctx context.Context, token string) (*entity.RefreshToken, error) {
	var record entity.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteByToken removes zero or one row; deleting an absent token is a no-op.
func (r *refreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&entity.RefreshToken{}).
		Error
}

// DeleteAllByUser is a single bulk delete so a concurrent login never
// observes a partially cleared session set.
func (r *refreshTokenRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.RefreshToken{}).
		Error
}

func (r *refreshTokenRepository) CleanupExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.RefreshToken{}).
		Error
}
