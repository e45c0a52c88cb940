package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/media-tracker/internal/handler"
	"github.com/iliyamo/media-tracker/internal/middleware"
)

// RegisterRoutes wires up the whole HTTP surface.  Signup, verification
// and login are public; everything else under /api requires a valid
// Bearer access token, which the auth middleware resolves to a user
// before any handler runs.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, m *handler.MediaHandler, jwtSecret string, users middleware.UserSource) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.GET("/", handler.Root)

	auth := api.Group("/auth")
	auth.POST("/signup", a.Signup)
	auth.GET("/verify-email", a.VerifyEmail)
	auth.POST("/login", a.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtSecret, users))
	protected.GET("/auth/me", a.Me)
	protected.POST("/media", m.Create)
	protected.GET("/media", m.List)
	protected.PUT("/media/:id", m.Update)
	protected.DELETE("/media/:id", m.Delete)
}
