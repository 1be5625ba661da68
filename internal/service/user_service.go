package service

import (
	"context"

	"authgate/internal/entity"
	"authgate/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserService struct {
	users       repository.UserRepository
	audit       repository.SecurityLogRepository
	emailSender EmailSender
	log         *logrus.Logger
}

func NewUserService(
	users repository.UserRepository,
	audit repository.SecurityLogRepository,
	emailSender EmailSender,
	log *logrus.Logger,
) *UserService {
	return &UserService{
		users:       users,
		audit:       audit,
		emailSender: emailSender,
		log:         log,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}

// DeactivateUser is admin-only; deactivating an already inactive account is
// an error and performs no mutation.
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !user.IsActive {
		return ErrAlreadyDeactivated
	}

	if err := s.users.SetActive(ctx, userID, false); err != nil {
		return err
	}
	s.notifyStatus(ctx, user, false)
	return nil
}

func (s *UserService) ActivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsActive {
		return ErrAlreadyActive
	}

	if err := s.users.SetActive(ctx, userID, true); err != nil {
		return err
	}
	s.notifyStatus(ctx, user, true)
	return nil
}

func (s *UserService) notifyStatus(ctx context.Context, user *entity.User, active bool) {
	if s.audit != nil {
		action := entity.AccountDisable
		if active {
			action = entity.AccountActivate
		}
		_ = s.audit.Log(ctx, &entity.SecurityLog{UserID: &user.ID, Action: action})
	}
	if s.emailSender == nil {
		return
	}
	if err := s.emailSender.SendAccountStatusEmail(ctx, user.Email, active); err != nil && s.log != nil {
		s.log.WithError(err).WithField("email", user.Email).Warn("account status email delivery failed")
	}
}
