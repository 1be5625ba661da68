package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"authgate/internal/dto"
	"authgate/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, dto.MessageResponse{Message: message})
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, dto.MessageResponse{Message: err.Error()})
}

// writeValidationError surfaces field-level failures verbatim as 422.
func writeValidationError(c echo.Context, err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return writeMessage(c, http.StatusUnprocessableEntity, validationMessage(fieldErrors[0]))
	}
	return writeError(c, http.StatusUnprocessableEntity, err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "fullname":
		return "Name must be at least 2 characters long"
	case "phonenum":
		return "Invalid phone number format"
	case "strongpwd":
		return "Password must be at least 8 characters long and contain upper, lower, digit and special characters"
	case "email":
		return "Invalid email address"
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrAlreadyActive),
		errors.Is(err, service.ErrAlreadyDeactivated),
		errors.Is(err, service.ErrProviderEmail):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, service.ErrInvalidRefreshToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrAccountDeactivated):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	}
	return writeError(c, status, err)
}

func clientIP(c echo.Context) *string {
	ip := c.RealIP()
	if ip == "" {
		return nil
	}
	return &ip
}
