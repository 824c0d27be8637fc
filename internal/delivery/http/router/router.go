// Package router contains routing setup for the HTTP delivery.
package router

import (
	"authgate/internal/delivery/http/middleware"
	"authgate/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	OAuthHandler   *handler.OAuthHandler
	FieldHandler   *handler.FieldHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	oauthHandler   *handler.OAuthHandler
	fieldHandler   *handler.FieldHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		oauthHandler:   params.OAuthHandler,
		fieldHandler:   params.FieldHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Registration form definition for the public sign-up page
	e.GET("/registration-fields", r.fieldHandler.ListPublic)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/google", r.oauthHandler.GoogleLogin)
		authGroup.GET("/google/callback", r.oauthHandler.GoogleCallback)
		authGroup.POST("/google/token", r.oauthHandler.GoogleToken)
	}

	// Session routes that require a valid bearer token
	sessionGroup := e.Group("/auth")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.GET("/me", r.authHandler.Me)
		sessionGroup.POST("/logout", r.authHandler.Logout)
		sessionGroup.GET("/providers", r.authHandler.Providers)
	}

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin())
	{
		adminGroup.GET("/users", r.authHandler.ListUsers)
		adminGroup.GET("/registration-fields", r.fieldHandler.ListAll)
		adminGroup.POST("/registration-fields", r.fieldHandler.Create)
		adminGroup.GET("/registration-fields/:id", r.fieldHandler.Get)
		adminGroup.PUT("/registration-fields/:id", r.fieldHandler.Update)
		adminGroup.DELETE("/registration-fields/:id", r.fieldHandler.Delete)
	}
}
