package models

import "time"

// ShortenURLResponse represents the response after creating a short URL
type ShortenURLResponse struct {
	ShortURL string `json:"short_url"` // Full short URL (base URL + short code)
}

// URLResponse represents a URL record formatted for clients, with the
// computed external short URL in place of the bare code.
type URLResponse struct {
	URLID       string    `json:"url_id"` // UUID
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"short_url"`
	ClickCount  int       `json:"click_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
