package models

// ShortenURLRequest represents the request body for creating a short URL
type ShortenURLRequest struct {
	URL string `json:"url" binding:"required,url"` // Gin validation: required and must be a valid absolute URL
}

// UpdateURLRequest represents the request body for replacing a URL's destination
type UpdateURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}
