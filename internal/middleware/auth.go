package middleware // reusable HTTP middleware functions

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/media-tracker/internal/model"
	"github.com/iliyamo/media-tracker/internal/repository"
	"github.com/iliyamo/media-tracker/internal/utils"
)

// userContextKey is the echo context key under which Auth stores the
// resolved user.
const userContextKey = "user"

// UserSource resolves a validated token subject to a full user record.
// *repository.UserRepo satisfies it in production.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Auth returns an Echo middleware that validates a Bearer access token,
// loads the owning user from the credential store and injects it into the
// request context.  Protected handlers retrieve it via CurrentUser.
//
// Every failure mode (missing header, malformed token, expired token,
// unknown user) is answered with the same 401 body; the internal cause is
// only logged.  The handler is never invoked on failure, so no protected
// operation can have a side effect for an unauthenticated caller.
func Auth(secret string, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// expired vs malformed stays in the logs only
				log.Printf("auth: token rejected: %v", err)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
			}

			u, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					log.Printf("auth: token subject %s has no user record", userID)
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
			}

			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Auth, or nil on routes that are
// not behind the middleware.  The record includes the password hash and
// must never be written to a response as-is; use User.View().
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userContextKey).(*model.User)
	return u
}
