// Package types defines the data structures shared by the services.
package types

import "time"

// URLRecord is the internal representation of a shortened URL together with
// its click analytics. The storage layer hands out copies, never references
// to the stored value.
type URLRecord struct {
	ShortCode      string
	OriginalURL    string
	CreatedAt      time.Time
	Clicks         int64
	LastAccessedAt *time.Time
}

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	URL string `json:"url" validate:"required"`
}

// ShortenResponse is returned after a successful shorten request.
type ShortenResponse struct {
	ShortCode   string `json:"short_code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// StatsResponse reports the analytics for a short code. LastAccessed is null
// until the first redirect.
type StatsResponse struct {
	URL          string     `json:"url"`
	Clicks       int64      `json:"clicks"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccessed *time.Time `json:"last_accessed"`
}
