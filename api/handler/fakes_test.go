package handler

import (
	"context"
	"sync"
	"time"

	"authgate/internal/entity"

	"github.com/google/uuid"
)

// memoryStore backs every repository interface with maps so the full HTTP
// stack can run without Postgres.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	otps     map[uuid.UUID]*entity.OTP
	sessions map[string]*entity.RefreshToken
	logs     []*entity.SecurityLog
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[uuid.UUID]*entity.User{},
		otps:     map[uuid.UUID]*entity.OTP{},
		sessions: map[string]*entity.RefreshToken{},
	}
}

// UserRepository

func (s *memoryStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return nil
}

func (s *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) Update(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *memoryStore) MarkVerified(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.IsVerified = true
	}
	return nil
}

func (s *memoryStore) SetActive(_ context.Context, userID uuid.UUID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		user.IsActive = active
	}
	return nil
}

func (s *memoryStore) List(_ context.Context) ([]entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]entity.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	return users, nil
}

// sessionStore exposes the RefreshTokenRepository view of the store. The
// method set clashes with UserRepository's Create, hence the wrapper.
type sessionStore struct {
	*memoryStore
}

func (s sessionStore) Create(_ context.Context, token *entity.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	s.sessions[token.Token] = token
	return nil
}

func (s sessionStore) FindValid(_ context.Context, token string) (*entity.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.sessions[token]
	if !ok || !record.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return record, nil
}

func (s sessionStore) DeleteByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s sessionStore) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, record := range s.sessions {
		if record.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s sessionStore) CleanupExpired(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, record := range s.sessions {
		if !record.ExpiresAt.After(time.Now()) {
			delete(s.sessions, token)
		}
	}
	return nil
}

type otpStore struct {
	*memoryStore
}

func (s otpStore) Create(_ context.Context, otp *entity.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createOTPLocked(otp)
	return nil
}

func (s otpStore) FindByEmailAndCode(_ context.Context, email string, code string) (*entity.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, otp := range s.otps {
		if otp.Email == email && otp.Code == code {
			return otp, nil
		}
	}
	return nil, nil
}

func (s otpStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.otps, id)
	return nil
}

func (s otpStore) LatestByEmail(_ context.Context, email string) (*entity.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *entity.OTP
	for _, otp := range s.otps {
		if otp.Email != email {
			continue
		}
		if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
			latest = otp
		}
	}
	return latest, nil
}

type signupStore struct {
	*memoryStore
}

func (s signupStore) CreateUserWithOTP(_ context.Context, user *entity.User, otp *entity.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	otp.Email = user.Email
	s.createOTPLocked(otp)
	return nil
}

type auditStore struct {
	*memoryStore
}

func (s auditStore) Log(_ context.Context, log *entity.SecurityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *memoryStore) createOTPLocked(otp *entity.OTP) {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	s.otps[otp.ID] = otp
}

type capturingEmailSender struct {
	mu        sync.Mutex
	otpEmails []string
}

func (s *capturingEmailSender) SendOTPEmail(_ context.Context, email string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otpEmails = append(s.otpEmails, email)
	return nil
}

func (s *capturingEmailSender) SendAccountStatusEmail(_ context.Context, _ string, _ bool) error {
	return nil
}
