package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/media-tracker/internal/config"
	"github.com/iliyamo/media-tracker/internal/mailer"
	"github.com/iliyamo/media-tracker/internal/middleware"
	"github.com/iliyamo/media-tracker/internal/model"
	"github.com/iliyamo/media-tracker/internal/repository"
	"github.com/iliyamo/media-tracker/internal/utils"
)

// UserStore is the slice of the credential store the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Verify(ctx context.Context, token string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Mailer mailer.Mailer
}

func NewAuthHandler(cfg config.Config, users UserStore, m mailer.Mailer) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Mailer: m}
}

// ----- DTOs -----

type signupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginResp struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        model.UserView `json:"user"`
}

// Signup: create an unverified user and send the verification email.
// The user row is persisted before the email goes out; when delivery fails
// the signup is reported as failed but the row deliberately stays (the
// email can be re-sent out of band).
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	// Emails are matched byte-exact across the whole service: trimmed here,
	// never case-folded.
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and name are required"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email address"})
	}

	token, err := utils.NewVerificationToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	u := &model.User{
		ID:                uuid.NewString(),
		Email:             req.Email,
		Name:              req.Name,
		HashedPassword:    hash,
		IsVerified:        false,
		VerificationToken: &token,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := h.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if err := h.Mailer.SendVerification(ctx, u.Email, token, u.Name); err != nil {
		log.Printf("signup: verification email to %s failed: %v", u.Email, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send verification email"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Registration successful! Please check your email to verify your account.",
		"email":   u.Email,
	})
}

// VerifyEmail: consume a verification token.  The storage layer clears the
// token in the same statement that flips is_verified, so a token works
// exactly once; replays land in the not-found branch.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired verification token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Verify(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired verification token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Email verified successfully! You can now log in."})
}

// Login: verify credentials and issue an access token.  An unknown email
// and a wrong password produce byte-identical responses so accounts cannot
// be enumerated; an unverified account is the one case that is reported
// distinctly.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.HashedPassword, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}
	if !u.IsVerified {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Please verify your email before logging in"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		User:        u.View(),
	})
}

// Me: return the sanitized view of the caller resolved by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}
	return c.JSON(http.StatusOK, u.View())
}
