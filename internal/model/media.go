package model

// MediaItem is a single tracked entry (manga, manhwa, manhua, anime, ...)
// owned by exactly one user.  Type and Status are open strings: the API
// does not validate them against a closed set.  Current and Total default
// to zero and no relationship between them is enforced.
type MediaItem struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Status    string `json:"status"` // plan, reading, completed, on-hold, dropped
	Current   int    `json:"current"`
	Total     int    `json:"total"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MediaPatch describes a partial update.  Only non-nil fields are applied,
// so a client can change a single field without resending the others.
type MediaPatch struct {
	Title   *string `json:"title"`
	Type    *string `json:"type"`
	Status  *string `json:"status"`
	Current *int    `json:"current"`
	Total   *int    `json:"total"`
}
