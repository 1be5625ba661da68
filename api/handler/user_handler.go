package handler

import (
	"errors"
	"net/http"

	"authgate/api/middleware"
	"authgate/internal/dto"
	"authgate/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, service.ErrSessionExpired)
	}
	user, err := h.Service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) ListAll(c echo.Context) error {
	users, err := h.Service.ListUsers(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}

func (h *UserHandler) Deactivate(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.DeactivateUser(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "User deactivated")
}

func (h *UserHandler) Activate(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ActivateUser(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "User activated")
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid user id")
	}
	return id, nil
}
