package handler_test

// Shared fixtures for the handler tests: in-memory stores standing in for
// the MySQL repositories, a recording mailer, and an echo instance wired
// through the real router and auth middleware.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/media-tracker/internal/config"
	"github.com/iliyamo/media-tracker/internal/handler"
	"github.com/iliyamo/media-tracker/internal/model"
	"github.com/iliyamo/media-tracker/internal/repository"
	"github.com/iliyamo/media-tracker/internal/router"
)

const testSecret = "handler-test-secret"

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by id
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) Verify(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			u.IsVerified = true
			u.VerificationToken = nil
			return nil
		}
	}
	return repository.ErrNotFound
}

type sentMail struct {
	email, token, name string
}

type fakeMailer struct {
	mu   sync.Mutex
	fail bool
	sent []sentMail
}

func (f *fakeMailer) SendVerification(_ context.Context, email, token, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, sentMail{email: email, token: token, name: name})
	return nil
}

func (f *fakeMailer) lastToken(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent, "no verification email was sent")
	return f.sent[len(f.sent)-1].token
}

type fakeMediaStore struct {
	mu    sync.Mutex
	items map[string]*model.MediaItem
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{items: map[string]*model.MediaItem{}}
}

func (f *fakeMediaStore) Create(_ context.Context, m *model.MediaItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMediaStore) ListByUser(_ context.Context, userID string) ([]*model.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.MediaItem
	for _, it := range f.items {
		if it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMediaStore) Update(_ context.Context, id, userID string, patch model.MediaPatch, updatedAt string) (*model.MediaItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok || it.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		it.Title = *patch.Title
	}
	if patch.Type != nil {
		it.Type = *patch.Type
	}
	if patch.Status != nil {
		it.Status = *patch.Status
	}
	if patch.Current != nil {
		it.Current = *patch.Current
	}
	if patch.Total != nil {
		it.Total = *patch.Total
	}
	it.UpdatedAt = updatedAt
	cp := *it
	return &cp, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok || it.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// newTestAPI wires the real router, handlers and auth middleware over the
// in-memory fakes.  Requests go through e.ServeHTTP, so routing, binding
// and the ownership guard are all exercised.
func newTestAPI(t *testing.T) (*echo.Echo, *fakeUserStore, *fakeMediaStore, *fakeMailer) {
	t.Helper()
	users := newFakeUserStore()
	media := newFakeMediaStore()
	mail := &fakeMailer{}
	cfg := config.Config{
		JWTSecret:     testSecret,
		AccessTTLDays: 7,
		BcryptCost:    bcrypt.MinCost,
	}
	e := echo.New()
	router.RegisterRoutes(e, handler.NewAuthHandler(cfg, users, mail), handler.NewMediaHandler(media), cfg.JWTSecret, users)
	return e, users, media, mail
}

func doRequest(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signup(t *testing.T, e *echo.Echo, email, password, name string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":%q}`, email, password, name)
	rec := doRequest(e, http.MethodPost, "/api/auth/signup", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func signupAndVerify(t *testing.T, e *echo.Echo, mail *fakeMailer, email, password, name string) {
	t.Helper()
	signup(t, e, email, password, name)
	rec := doRequest(e, http.MethodGet, "/api/auth/verify-email?token="+mail.lastToken(t), "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := doRequest(e, http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}
