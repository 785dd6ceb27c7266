package model

import "time"

// UsernameChange is one row of the append-only username change history.
// The most recent row per user drives the 30-day change cooldown.
type UsernameChange struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	OldUsername string    `json:"old_username"`
	NewUsername string    `json:"new_username"`
	ChangedAt   time.Time `json:"changed_at"`
}
