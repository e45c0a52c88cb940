package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/media-tracker/internal/middleware"
	"github.com/iliyamo/media-tracker/internal/model"
	"github.com/iliyamo/media-tracker/internal/repository"
)

// MediaStore is the slice of the media store the handlers need.  Every
// mutation is scoped by (id, userID); the store answers
// repository.ErrNotFound both for missing records and for records owned
// by a different user, so handlers cannot leak existence.
type MediaStore interface {
	Create(ctx context.Context, m *model.MediaItem) error
	ListByUser(ctx context.Context, userID string) ([]*model.MediaItem, error)
	Update(ctx context.Context, id, userID string, patch model.MediaPatch, updatedAt string) (*model.MediaItem, error)
	Delete(ctx context.Context, id, userID string) error
}

// MediaHandler bundles dependencies for the media CRUD endpoints.  All of
// them sit behind the auth middleware and read the caller via CurrentUser.
type MediaHandler struct {
	Media MediaStore
}

func NewMediaHandler(m MediaStore) *MediaHandler { return &MediaHandler{Media: m} }

type createMediaReq struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// Create handles POST /api/media.  Type and status are open strings by
// contract; status falls back to "plan" and the counters to zero.
func (h *MediaHandler) Create(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}

	var req createMediaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Type = strings.TrimSpace(req.Type)
	if req.Title == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and type are required"})
	}
	if req.Status == "" {
		req.Status = "plan"
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	item := &model.MediaItem{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Title:     req.Title,
		Type:      req.Type,
		Status:    req.Status,
		Current:   req.Current,
		Total:     req.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Media.Create(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create media failed"})
	}
	return c.JSON(http.StatusOK, item)
}

// List handles GET /api/media and returns only the caller's items.
func (h *MediaHandler) List(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Media.ListByUser(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []*model.MediaItem{} // empty list, not null
	}
	return c.JSON(http.StatusOK, items)
}

// Update handles PUT /api/media/:id with partial-update semantics: only
// the fields present in the body change, updated_at always refreshes.
func (h *MediaHandler) Update(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}
	id := c.Param("id")

	var patch model.MediaPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Media.Update(ctx, id, u.ID, patch, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Media item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/media/:id.
func (h *MediaHandler) Delete(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Media.Delete(ctx, id, u.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Media item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Media item deleted successfully"})
}
