package model

import "time"

// Completion records that a user finished their routine on a calendar day.
// At most one row exists per (user, date); inserts are insert-or-ignore.
type Completion struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CompletedDate time.Time `json:"completed_date"`
}
