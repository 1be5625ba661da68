package routes

import (
	"authgate/api/handler"
	"authgate/api/middleware"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	OAuth          *handler.OAuthHandler
	AuthMiddleware middleware.AuthMiddleware
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	oauthHandler *handler.OAuthHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		OAuth:          oauthHandler,
		AuthMiddleware: authMiddleware,
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.GET("/health", handler.Health)

	e.POST("/auth/signup", r.Auth.Signup)
	e.POST("/auth/verify-otp", r.Auth.VerifyOTP)
	e.POST("/auth/login", r.Auth.Login)
	e.POST("/auth/logout", r.Auth.Logout)
	e.POST("/auth/logout-all-sessions", r.Auth.LogoutAll, r.AuthMiddleware.RequireIdentity)
	e.POST("/auth/password/forgot", r.Auth.PasswordForgot)

	e.GET("/users/me", r.Users.Me, r.AuthMiddleware.RequireIdentity)
	e.GET("/users/all", r.Users.ListAll, r.AuthMiddleware.RequireIdentity, middleware.RequireRole("admin"))
	e.PATCH("/users/deactivate/:id", r.Users.Deactivate, r.AuthMiddleware.RequireIdentity, middleware.RequireRole("admin"))
	e.PATCH("/users/activate/:id", r.Users.Activate, r.AuthMiddleware.RequireIdentity, middleware.RequireRole("admin"))

	e.GET("/oauth/:provider/login", r.OAuth.Login)
	e.GET("/oauth/:provider/callback", r.OAuth.Callback)
}
