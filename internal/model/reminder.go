package model

// Reminder is a per-user time-of-day note for when to do the routine.
// ReminderTime is stored verbatim and never validated against a time format.
// Enabled defaults to true; no exposed operation toggles it.
type Reminder struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	ReminderTime string `json:"reminder_time"`
	Enabled      bool   `json:"enabled"`
}
