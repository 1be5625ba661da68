package service

import (
	"context"
	"encoding/json"

	"authgate/internal/entity"
	"authgate/internal/repository"
	"authgate/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries both tokens for the transport layer to attach as
// cookies.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// RefreshResult is a freshly minted access token plus the identity derived
// from the current user record, not from the stale refresh claims.
type RefreshResult struct {
	AccessToken string
	UserID      uuid.UUID
	Role        entity.UserRole
}

type AuthService struct {
	users    repository.UserRepository
	sessions repository.RefreshTokenRepository
	otps     repository.OTPRepository
	signups  repository.SignupRepository
	audit    repository.SecurityLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	tokens       TokenCodec
	clock        Clock
	config       AuthConfig
	log          *logrus.Logger
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.RefreshTokenRepository,
	otps repository.OTPRepository,
	signups repository.SignupRepository,
	audit repository.SecurityLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	tokens TokenCodec,
	clock Clock,
	config AuthConfig,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		otps:         otps,
		signups:      signups,
		audit:        audit,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		tokens:       tokens,
		clock:        clock,
		config:       config,
		log:          log,
	}
}

// Signup creates an unverified user together with its first OTP in one
// transaction, then sends the code. A failed send is logged only: the
// signup itself has already succeeded.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) error {
	email := utils.NormalizeEmail(input.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailExists
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: &hash,
		Role:         entity.UserRoleUser,
		IsActive:     true,
		IsVerified:   false,
	}
	if input.Phone != "" {
		user.Phone = &input.Phone
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}
	otp := &entity.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: s.clock.Now().Add(s.config.OTPTTL),
	}

	if err := s.signups.CreateUserWithOTP(ctx, user, otp); err != nil {
		return err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendOTPEmail(ctx, email, code); err != nil {
			s.logWarn(err, "otp email delivery failed", logrus.Fields{"email": email})
		}
	}
	return nil
}

// VerifyOTP consumes a matching, unexpired code and flips the user to
// verified. An expired code matches but is permanently unusable.
func (s *AuthService) VerifyOTP(ctx context.Context, email string, code string) error {
	email = utils.NormalizeEmail(email)

	otp, err := s.otps.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrInvalidOTP
	}
	if otp.ExpiresAt.Before(s.clock.Now()) {
		return ErrOTPExpired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return err
	}
	return s.otps.Delete(ctx, otp.ID)
}

// Login checks credentials, verification and active state in that order.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ipAddress *string) (*LoginResult, error) {
	email := utils.NormalizeEmail(input.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		s.logSecurity(ctx, nil, ipAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(*user.PasswordHash, input.Password) {
		s.logSecurity(ctx, &user.ID, ipAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	result, err := s.issueSessionTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logSecurity(ctx, &user.ID, ipAddress, entity.LoginSuccess, nil)
	return result, nil
}

// LoginWithProvider is the tail of Login for a provider-verified identity:
// no password or OTP gate is repeated, only the active check.
func (s *AuthService) LoginWithProvider(ctx context.Context, name string, email string, ipAddress *string) (*LoginResult, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, ErrProviderEmail
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{
			Name:       name,
			Email:      email,
			Role:       entity.UserRoleUser,
			IsActive:   true,
			IsVerified: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	result, err := s.issueSessionTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logSecurity(ctx, &user.ID, ipAddress, entity.OAuthLogin, map[string]any{"email": email})
	return result, nil
}

// RefreshAccess mints a new access token from a still-valid stored refresh
// token. The role comes from the current user record: this is the only
// point where role drift resolves. The refresh token itself is not
// reissued; logout and expiry are its only ends.
func (s *AuthService) RefreshAccess(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	record, err := s.sessions.FindValid(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrInvalidRefreshToken
	}

	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID.String(), string(user.Role))
	if err != nil {
		return nil, err
	}
	return &RefreshResult{
		AccessToken: accessToken,
		UserID:      user.ID,
		Role:        user.Role,
	}, nil
}

// Logout deletes the one presented session row. Absent rows are a no-op so
// repeated logouts stay harmless.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, ipAddress *string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, refreshToken); err != nil {
		return err
	}
	s.logSecurity(ctx, nil, ipAddress, entity.Logout, nil)
	return nil
}

func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID, ipAddress *string) error {
	if err := s.sessions.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	s.logSecurity(ctx, &userID, ipAddress, entity.SessionRevoked, map[string]any{"scope": "all"})
	return nil
}

func (s *AuthService) issueSessionTokens(ctx context.Context, user *entity.User) (*LoginResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID.String(), string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: s.clock.Now().Add(s.config.RefreshTokenTTL),
	}
	if err := s.sessions.Create(ctx, record); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) logSecurity(ctx context.Context, userID *uuid.UUID, ipAddress *string, action entity.SecurityAction, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			s.logWarn(err, "security log metadata", nil)
			return
		}
		payload = datatypes.JSON(bytes)
	}
	log := &entity.SecurityLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	if err := s.audit.Log(ctx, log); err != nil {
		s.logWarn(err, "security log write failed", nil)
	}
}

func (s *AuthService) logWarn(err error, msg string, fields logrus.Fields) {
	if s.log == nil {
		return
	}
	s.log.WithError(err).WithFields(fields).Warn(msg)
}
