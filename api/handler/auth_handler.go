package handler

import (
	"net/http"

	"authgate/api/middleware"
	"authgate/internal/dto"
	"authgate/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
	Cookies  middleware.CookiePolicy
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate, cookies middleware.CookiePolicy) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Validate: validate,
		Cookies:  cookies,
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}
	input := service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
	if err := h.Service.Signup(c.Request().Context(), input); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusCreated, "Signup successful. Verify OTP.")
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req dto.VerifyOTPRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}
	if err := h.Service.VerifyOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "Email verified successfully")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}
	input := service.LoginInput{Email: req.Email, Password: req.Password}
	result, err := h.Service.Login(c.Request().Context(), input, clientIP(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	h.Cookies.SetAccessCookie(c, result.AccessToken)
	h.Cookies.SetRefreshCookie(c, result.RefreshToken)
	return writeMessage(c, http.StatusOK, "Login successful")
}

// Logout clears both cookies regardless of whether a session row existed.
func (h *AuthHandler) Logout(c echo.Context) error {
	refreshToken := h.Cookies.ReadRefreshCookie(c)
	if err := h.Service.Logout(c.Request().Context(), refreshToken, clientIP(c)); err != nil {
		return writeServiceError(c, err)
	}
	h.Cookies.ClearAuthCookies(c)
	return writeMessage(c, http.StatusOK, "Logout successful")
}

func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, service.ErrSessionExpired)
	}
	if err := h.Service.LogoutAll(c.Request().Context(), userID, clientIP(c)); err != nil {
		return writeServiceError(c, err)
	}
	h.Cookies.ClearAuthCookies(c)
	return writeMessage(c, http.StatusOK, "Logged out from all devices")
}

// PasswordForgot only acknowledges the request; the reset flow itself is
// not implemented.
func (h *AuthHandler) PasswordForgot(c echo.Context) error {
	var req dto.PasswordForgotRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}
	return writeMessage(c, http.StatusAccepted, "If the email exists, reset instructions will follow")
}
