// Package repository implements MySQL persistence for users, posts,
// username history and mailed codes. Sentinel errors shared across the
// repositories live here so handlers can map failures to stable response
// statuses without string matching.
package repository

import "errors"

// ErrUsernameExists and ErrEmailExists report unique-key violations on the
// users table. The original duplicate answers with 403, not 409.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// ErrNotFound is returned when a point lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrCodeCooldown is returned when a verification or restore code is
// requested again before the resend cooldown elapsed.
var ErrCodeCooldown = errors.New("code recently issued")

// ErrCodeMismatch is returned when a supplied code does not match the
// stored one for the user.
var ErrCodeMismatch = errors.New("code mismatch")
