package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"authgate/api/handler"
	apiMiddleware "authgate/api/middleware"
	"authgate/api/routes"
	"authgate/config"
	"authgate/internal/dto"
	"authgate/internal/repository"
	"authgate/internal/service"
	"authgate/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	validate := validator.New()
	if err := dto.RegisterCustomValidators(validate); err != nil {
		logger.WithError(err).Fatal("validator setup failed")
	}

	tokenManager := utils.TokenManager{
		AccessSecret:  []byte(cfg.AccessTokenSecret),
		RefreshSecret: []byte(cfg.RefreshTokenSecret),
		Issuer:        cfg.JWTIssuer,
		AccessTTL:     cfg.AccessTokenTTL(),
		RefreshTTL:    cfg.RefreshTokenTTL(),
	}

	cookies := apiMiddleware.CookiePolicy{
		AccessName:  cfg.AccessTokenCookieName,
		RefreshName: cfg.RefreshTokenCookieName,
		Domain:      cfg.CookieDomain,
		Secure:      cfg.CookieSecure,
		SameSite:    cfg.SameSite(),
		AccessTTL:   cfg.AccessTokenTTL(),
		RefreshTTL:  cfg.RefreshTokenTTL(),
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewRefreshTokenRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	signupRepo := repository.NewSignupRepository(db)
	auditRepo := repository.NewSecurityLogRepository(db)

	emailSender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.OTPExpireMinutes)
	passwordHasher := service.BcryptPasswordHasher{}

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		otpRepo,
		signupRepo,
		auditRepo,
		emailSender,
		passwordHasher,
		tokenManager,
		service.RealClock{},
		service.AuthConfig{
			AccessTokenTTL:  cfg.AccessTokenTTL(),
			RefreshTokenTTL: cfg.RefreshTokenTTL(),
			OTPTTL:          cfg.OTPTTL(),
		},
		logger,
	)
	userService := service.NewUserService(userRepo, auditRepo, emailSender, logger)

	providers := map[string]*service.OAuthProvider{
		"google": service.NewGoogleProvider(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			fmt.Sprintf("%s/oauth/google/callback", cfg.OAuthRedirectBase),
		),
		"github": service.NewGithubProvider(
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			fmt.Sprintf("%s/oauth/github/callback", cfg.OAuthRedirectBase),
		),
	}

	authHandler := handler.NewAuthHandler(authService, validate, cookies)
	userHandler := handler.NewUserHandler(userService)
	oauthHandler := handler.NewOAuthHandler(authService, providers, cookies)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{
		Auth:    authService,
		Tokens:  tokenManager,
		Cookies: cookies,
	}
	router := routes.NewRouter(app, authHandler, userHandler, oauthHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
