package model

// User represents an account record as stored in the `users` table.
// Emails are matched byte-exact: two addresses differing only in case are
// distinct accounts.  VerificationToken is present only while the account
// is unverified and is cleared the moment verification succeeds; the raw
// value is a 32-byte random secret, URL-safe base64 encoded.
//
// Timestamps are persisted as RFC 3339 UTC strings, so they are carried
// here as plain strings rather than time.Time.
type User struct {
	ID                string  // users.id (uuid4)
	Email             string  // users.email (unique, byte-exact)
	Name              string  // users.name
	HashedPassword    string  // users.hashed_password (bcrypt; never the plaintext)
	IsVerified        bool    // users.is_verified
	VerificationToken *string // users.verification_token (nil once verified)
	CreatedAt         string  // users.created_at (RFC 3339 UTC)
}

// UserView is the sanitized shape returned to clients.  It never carries
// the password hash or the verification token.
type UserView struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsVerified bool   `json:"is_verified"`
}

// View returns the client-safe projection of the user.
func (u *User) View() UserView {
	return UserView{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
	}
}
