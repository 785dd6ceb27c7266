package model

import "time"

// DefaultDescription is assigned to freshly registered profiles, matching
// the placeholder text users see before editing their page.
const DefaultDescription = "Hey. You can write information about yourself here!"

// Link is a single external profile link ("VK" -> "vk.com/some_id").
type Link struct {
	Site string `json:"site"`
	Link string `json:"link"`
}

// User mirrors the 'users' table. PasswordHash never leaves the backend;
// handlers build separate response types without it.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Privilege    string    `json:"privilege"`
	Score        int64     `json:"score"`
	Verified     bool      `json:"verified"`
	Description  string    `json:"description"`
	Alias        string    `json:"alias,omitempty"`
	Location     string    `json:"location,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Links        []Link    `json:"links,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
