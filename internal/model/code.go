package model

import "time"

// Code kinds stored in the user_codes table.
const (
	CodeVerification = "verification"
	CodeRestore      = "restore"
)

// UserCode is a single-use random code mailed to a user, either to verify
// the account email or to restore a forgotten password. A user holds at
// most one live code per kind; reissuing replaces it after a cooldown.
type UserCode struct {
	UserID    uint64    `json:"user_id"`
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
