package model

import "time"

// Selfie is the metadata row for an uploaded progress photo.
// Filename is the stored name (owner ID + timestamp + sanitized original),
// unique across uploads.
type Selfie struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
