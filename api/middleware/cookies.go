package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookiePolicy is the single source of truth for auth cookie attributes.
// Local login, OAuth callbacks, transparent rotation and clearing all go
// through it.
type CookiePolicy struct {
	AccessName  string
	RefreshName string
	Domain      string
	Secure      bool
	SameSite    http.SameSite
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

func (p CookiePolicy) SetAccessCookie(c echo.Context, token string) {
	c.SetCookie(p.build(p.AccessName, token, p.AccessTTL))
}

func (p CookiePolicy) SetRefreshCookie(c echo.Context, token string) {
	c.SetCookie(p.build(p.RefreshName, token, p.RefreshTTL))
}

func (p CookiePolicy) ClearAuthCookies(c echo.Context) {
	c.SetCookie(p.expired(p.AccessName))
	c.SetCookie(p.expired(p.RefreshName))
}

func (p CookiePolicy) ReadAccessCookie(c echo.Context) string {
	return readCookie(c, p.AccessName)
}

func (p CookiePolicy) ReadRefreshCookie(c echo.Context) string {
	return readCookie(c, p.RefreshName)
}

func (p CookiePolicy) build(name string, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   p.Domain,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

func (p CookiePolicy) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   p.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

func readCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
