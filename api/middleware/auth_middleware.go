package middleware

import (
	"errors"
	"net/http"

	"authgate/internal/service"
	"authgate/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type identity struct {
	userID uuid.UUID
	role   string
}

// AuthMiddleware resolves the caller's identity from the request cookies.
type AuthMiddleware struct {
	Auth    *service.AuthService
	Tokens  utils.TokenManager
	Cookies CookiePolicy
}

// RequireIdentity runs an ordered list of resolution strategies, first
// match wins: a verifying access cookie is used as-is; otherwise the
// refresh cookie is checked against the session store and a rotated access
// cookie is attached to the response before the handler runs.
func (m AuthMiddleware) RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	strategies := []func(echo.Context) (*identity, error){
		m.fromAccessToken,
		m.fromRefreshToken,
	}
	return func(c echo.Context) error {
		for _, resolve := range strategies {
			id, err := resolve(c)
			if err != nil {
				return err
			}
			if id != nil {
				SetAuthContext(c, id.userID, id.role)
				return next(c)
			}
		}
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrSessionExpired.Error())
	}
}

func (m AuthMiddleware) fromAccessToken(c echo.Context) (*identity, error) {
	token := m.Cookies.ReadAccessCookie(c)
	if token == "" {
		return nil, nil
	}
	claims, err := m.Tokens.ParseAccessToken(token)
	if err != nil {
		// expired or tampered, fall through to the refresh path
		return nil, nil
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil
	}
	return &identity{userID: userID, role: claims.Role}, nil
}

func (m AuthMiddleware) fromRefreshToken(c echo.Context) (*identity, error) {
	token := m.Cookies.ReadRefreshCookie(c)
	if token == "" {
		return nil, nil
	}

	result, err := m.Auth.RefreshAccess(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			return nil, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountDeactivated):
			return nil, echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return nil, err
		}
	}

	m.Cookies.SetAccessCookie(c, result.AccessToken)
	return &identity{userID: result.UserID, role: string(result.Role)}, nil
}
