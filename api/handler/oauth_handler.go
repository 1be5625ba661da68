package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"authgate/api/middleware"
	"authgate/internal/service"
	"authgate/internal/utils"

	"github.com/labstack/echo/v4"
)

const stateCookieName = "oauth_state"

// OAuthHandler drives the provider redirect/callback pair for every
// configured provider.
type OAuthHandler struct {
	Auth      *service.AuthService
	Providers map[string]*service.OAuthProvider
	Cookies   middleware.CookiePolicy
}

func NewOAuthHandler(auth *service.AuthService, providers map[string]*service.OAuthProvider, cookies middleware.CookiePolicy) *OAuthHandler {
	return &OAuthHandler{
		Auth:      auth,
		Providers: providers,
		Cookies:   cookies,
	}
}

func (h *OAuthHandler) Login(c echo.Context) error {
	provider, ok := h.Providers[c.Param("provider")]
	if !ok {
		return writeError(c, http.StatusNotFound, errors.New("unknown provider"))
	}

	state, err := utils.GenerateRandomToken(16)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

func (h *OAuthHandler) Callback(c echo.Context) error {
	provider, ok := h.Providers[c.Param("provider")]
	if !ok {
		return writeError(c, http.StatusNotFound, errors.New("unknown provider"))
	}

	if errParam := c.QueryParam("error"); errParam != "" {
		return writeError(c, http.StatusBadRequest, fmt.Errorf("provider error: %s", errParam))
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return writeError(c, http.StatusBadRequest, errors.New("missing code or state"))
	}
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		return writeError(c, http.StatusBadRequest, errors.New("invalid state"))
	}
	h.clearStateCookie(c)

	identity, err := provider.Exchange(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrProviderEmail) {
			return writeServiceError(c, err)
		}
		return writeError(c, http.StatusBadGateway, err)
	}

	result, err := h.Auth.LoginWithProvider(c.Request().Context(), identity.Name, identity.Email, clientIP(c))
	if err != nil {
		return writeServiceError(c, err)
	}

	// same configured cookie policy as local login
	h.Cookies.SetAccessCookie(c, result.AccessToken)
	h.Cookies.SetRefreshCookie(c, result.RefreshToken)

	return writeMessage(c, http.StatusOK, fmt.Sprintf("%s login successful", displayName(provider.Name)))
}

func (h *OAuthHandler) clearStateCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func displayName(provider string) string {
	switch provider {
	case "google":
		return "Google"
	case "github":
		return "GitHub"
	default:
		return provider
	}
}
