package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/media-tracker/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user.  Uniqueness of the email is enforced by the
// database index, so two concurrent signups with the same address cannot
// both succeed; the loser observes ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, name, hashed_password, is_verified, verification_token, created_at) VALUES (?,?,?,?,?,?,?)",
		u.ID, u.Email, u.Name, u.HashedPassword, u.IsVerified, u.VerificationToken, u.CreatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by email.  Matching is byte-exact: the address
// is not trimmed or case-folded here, callers normalize whitespace before
// calling.  Returns ErrNotFound when no user has this address.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx,
		"SELECT id, email, name, hashed_password, is_verified, verification_token, created_at FROM users WHERE email = ? LIMIT 1",
		email)
}

// GetByID fetches a user by id.  Returns ErrNotFound when the id is unknown.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx,
		"SELECT id, email, name, hashed_password, is_verified, verification_token, created_at FROM users WHERE id = ? LIMIT 1",
		id)
}

// Verify marks the user holding this verification token as verified and
// clears the token in the same statement.  Keying the UPDATE on the token
// itself makes the operation single-use: once the column is NULL the same
// token can never match again, so a replayed link reports ErrNotFound.
func (r *UserRepo) Verify(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_verified = 1, verification_token = NULL WHERE verification_token = ?",
		token)
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

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	var token sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.HashedPassword, &u.IsVerified, &token, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if token.Valid {
		u.VerificationToken = &token.String
	}
	return &u, nil
}
