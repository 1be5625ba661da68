package service

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmailExists         = errors.New("Email already exists")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrEmailNotVerified    = errors.New("Email not verified")
	ErrAccountDeactivated  = errors.New("Your account was deactivated. Please contact admin.")
	ErrInvalidOTP          = errors.New("Invalid OTP")
	ErrOTPExpired          = errors.New("OTP expired")
	ErrSessionExpired      = errors.New("Session expired. Please login again.")
	ErrInvalidRefreshToken = errors.New("Invalid refresh token. Please login again.")
	ErrUserNotFound        = errors.New("User not found")
	ErrAlreadyActive       = errors.New("User is already active")
	ErrAlreadyDeactivated  = errors.New("User is already deactivated")
	ErrProviderEmail       = errors.New("provider did not supply a verified email")
)
