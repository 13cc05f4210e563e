package entities

import "time"

// URL represents a shortened URL entity in the database
type URL struct {
	ID          string     `json:"id"` // UUID
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	UserID      *string    `json:"user_id,omitempty"` // Pointer allows nil (for anonymous URLs), UUID
	ClickCount  int        `json:"click_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"` // Tombstone; set once, never cleared
}

// Deleted reports whether the record carries a soft-delete tombstone.
func (u *URL) Deleted() bool {
	return u.DeletedAt != nil
}

// OwnedBy reports whether requesterID may update or delete this record.
// Anonymous records (nil UserID) are owned by nobody.
func (u *URL) OwnedBy(requesterID string) bool {
	return u.UserID != nil && *u.UserID == requesterID
}
