package model

import "time"

// Post mirrors the 'posts' table. Liker and disliker sets live in the
// post_likes / post_dislikes tables; a user appears in at most one of the
// two for a given post. Only the counts and the caller's own membership
// are exposed to clients.
type Post struct {
	ID          uint64    `json:"id"`
	WriterID    uint64    `json:"writer_id"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	Likes       int64     `json:"likes"`
	Dislikes    int64     `json:"dislikes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Comment is an entry of a post's append-only comment sequence. AnswerTo
// references another comment of the same post when the comment is a reply.
type Comment struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
	AnswerTo  *uint64   `json:"answer_to,omitempty"`
	Likes     int64     `json:"likes"`
	Dislikes  int64     `json:"dislikes"`
	CreatedAt time.Time `json:"created_at"`
}
