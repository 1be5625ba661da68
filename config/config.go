package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is built once at startup and treated as immutable afterwards.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"authgate"`
	Env      string `env:"ENV" envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	DatabaseURL string `env:"DATABASE_URL"`

	AccessTokenSecret        string `env:"ACCESS_TOKEN_SECRET_KEY"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"15"`
	RefreshTokenSecret       string `env:"REFRESH_TOKEN_SECRET_KEY"`
	RefreshTokenExpireDays   int    `env:"REFRESH_TOKEN_EXPIRE_DAYS" envDefault:"7"`
	JWTIssuer                string `env:"JWT_ISSUER" envDefault:"authgate"`

	AccessTokenCookieName  string `env:"ACCESS_TOKEN_COOKIE_NAME" envDefault:"access_token"`
	RefreshTokenCookieName string `env:"REFRESH_TOKEN_COOKIE_NAME" envDefault:"refresh_token"`
	CookieDomain           string `env:"COOKIE_DOMAIN"`
	CookieSecure           bool   `env:"COOKIE_SECURE" envDefault:"true"`
	CookieSameSite         string `env:"COOKIE_SAMESITE" envDefault:"strict"`

	OTPExpireMinutes int `env:"OTP_EXPIRE_MINUTES" envDefault:"5"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GithubClientID     string `env:"GITHUB_CLIENT_ID"`
	GithubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	OAuthRedirectBase  string `env:"OAUTH_REDIRECT_BASE" envDefault:"http://localhost:8080"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	EmailFrom    string `env:"EMAIL_FROM"`
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET_KEY and REFRESH_TOKEN_SECRET_KEY are required")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}
	if cfg.AccessTokenExpireMinutes <= 0 || cfg.RefreshTokenExpireDays <= 0 {
		return nil, fmt.Errorf("token expiries must be positive")
	}
	if cfg.OTPExpireMinutes <= 0 {
		return nil, fmt.Errorf("OTP_EXPIRE_MINUTES must be positive")
	}

	return cfg, nil
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL is counted in days everywhere: issuance, storage and
// cookie lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireDays) * 24 * time.Hour
}

func (c *Config) OTPTTL() time.Duration {
	return time.Duration(c.OTPExpireMinutes) * time.Minute
}

func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
