package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/media-tracker/internal/model"
)

// MediaRepo encapsulates all database queries for media items.  Every
// mutation is keyed on (id, user_id) so a caller can only ever touch their
// own records; a zero row count is reported as ErrNotFound regardless of
// whether the item is missing or owned by another user.
type MediaRepo struct{ DB *sql.DB }

func NewMediaRepo(db *sql.DB) *MediaRepo { return &MediaRepo{DB: db} }

const mediaColumns = "id, user_id, title, `type`, status, `current`, total, created_at, updated_at"

// Create inserts a new media item with the owner already attached.
func (r *MediaRepo) Create(ctx context.Context, m *model.MediaItem) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO media_items ("+mediaColumns+") VALUES (?,?,?,?,?,?,?,?,?)",
		m.ID, m.UserID, m.Title, m.Type, m.Status, m.Current, m.Total, m.CreatedAt, m.UpdatedAt)
	return err
}

// ListByUser returns all items owned by the given user, oldest first.
func (r *MediaRepo) ListByUser(ctx context.Context, userID string) ([]*model.MediaItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+mediaColumns+" FROM media_items WHERE user_id = ? ORDER BY created_at",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.MediaItem
	for rows.Next() {
		m := new(model.MediaItem)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Type, &m.Status, &m.Current, &m.Total, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields of the patch to the item owned by
// userID and refreshes updated_at unconditionally.  The fully updated
// record is read back and returned.  ErrNotFound is returned when no row
// matches the (id, user_id) pair.
func (r *MediaRepo) Update(ctx context.Context, id, userID string, patch model.MediaPatch, updatedAt string) (*model.MediaItem, error) {
	sets := []string{"updated_at = ?"}
	args := []any{updatedAt}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Type != nil {
		sets = append(sets, "`type` = ?")
		args = append(args, *patch.Type)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Current != nil {
		sets = append(sets, "`current` = ?")
		args = append(args, *patch.Current)
	}
	if patch.Total != nil {
		sets = append(sets, "total = ?")
		args = append(args, *patch.Total)
	}
	args = append(args, id, userID)

	res, err := r.DB.ExecContext(ctx,
		"UPDATE media_items SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.getByIDAndUser(ctx, id, userID)
}

// Delete removes the item owned by userID.  ErrNotFound when nothing matched.
func (r *MediaRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM media_items WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MediaRepo) getByIDAndUser(ctx context.Context, id, userID string) (*model.MediaItem, error) {
	var m model.MediaItem
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+mediaColumns+" FROM media_items WHERE id = ? AND user_id = ? LIMIT 1",
		id, userID).
		Scan(&m.ID, &m.UserID, &m.Title, &m.Type, &m.Status, &m.Current, &m.Total, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
