package service

import (
	"context"
	"time"

	"authgate/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	OTPTTL          time.Duration
}

// TokenCodec is the signing surface the engine needs; utils.TokenManager
// satisfies it.
type TokenCodec interface {
	IssueAccessToken(subject string, role string) (string, error)
	IssueRefreshToken(subject string) (string, error)
	ParseRefreshToken(token string) (*utils.RefreshClaims, error)
}

type EmailSender interface {
	SendOTPEmail(ctx context.Context, email string, code string) error
	SendAccountStatusEmail(ctx context.Context, email string, active bool) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
