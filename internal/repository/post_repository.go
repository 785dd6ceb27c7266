package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/scoring"
)

type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a post and returns its ID. Tags are stored as a JSON array.
func (r *PostRepo) Create(ctx context.Context, writerID uint64, description, content string, tags []string) (uint64, error) {
	if tags == nil {
		tags = []string{}
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (writer_id, description, content, tags) VALUES (?,?,?,?)",
		writerID, description, content, rawTags)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a post with its reaction counts.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var p model.Post
	var rawTags []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT p.id, p.writer_id, p.description, p.content, p.tags, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM post_likes    WHERE post_id = p.id),
		       (SELECT COUNT(*) FROM post_dislikes WHERE post_id = p.id)
		FROM posts p WHERE p.id=? LIMIT 1`, id).
		Scan(&p.ID, &p.WriterID, &p.Description, &p.Content, &rawTags,
			&p.CreatedAt, &p.UpdatedAt, &p.Likes, &p.Dislikes)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}
	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &p.Tags); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Update rewrites the editable fields of a post. Ownership is checked by
// the handler before calling.
func (r *PostRepo) Update(ctx context.Context, id uint64, description, content string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE posts SET description=?, content=?, tags=? WHERE id=?",
		description, content, rawTags, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post together with its reactions and comments (cascade).
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// React runs one like/dislike toggle as a single transaction. The post row
// is locked first, which serializes concurrent reactions on the same post:
// the membership read, the set mutation and the writer score update commit
// together or not at all. apply is scoring.ApplyLike or scoring.ApplyDislike.
func (r *PostRepo) React(ctx context.Context, postID, userID uint64, apply func(liked, disliked bool) scoring.Result) (scoring.Result, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return scoring.Result{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var writerID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT writer_id FROM posts WHERE id=? FOR UPDATE", postID).Scan(&writerID)
	if err == sql.ErrNoRows {
		return scoring.Result{}, ErrNotFound
	}
	if err != nil {
		return scoring.Result{}, err
	}

	var liked, disliked bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id=? AND user_id=?)",
		postID, userID).Scan(&liked); err != nil {
		return scoring.Result{}, err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM post_dislikes WHERE post_id=? AND user_id=?)",
		postID, userID).Scan(&disliked); err != nil {
		return scoring.Result{}, err
	}

	res := apply(liked, disliked)

	if res.RemoveLike {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM post_likes WHERE post_id=? AND user_id=?", postID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if res.RemoveDislike {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM post_dislikes WHERE post_id=? AND user_id=?", postID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if res.AddLike {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO post_likes (post_id, user_id) VALUES (?,?)", postID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if res.AddDislike {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO post_dislikes (post_id, user_id) VALUES (?,?)", postID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if res.AuthorDelta != 0 {
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET score = score + ? WHERE id=?", res.AuthorDelta, writerID); err != nil {
			return scoring.Result{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return scoring.Result{}, err
	}
	return res, nil
}

// AddComment appends a comment to a post. answerTo, when set, must point at
// a comment of the same post; the foreign key enforces existence.
func (r *PostRepo) AddComment(ctx context.Context, postID, userID uint64, content string, answerTo *uint64) (uint64, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM posts WHERE id=?)", postID).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (post_id, user_id, content, answer_to) VALUES (?,?,?,?)",
		postID, userID, content, answerTo)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListComments returns a post's comments in creation order with their
// reaction counts.
func (r *PostRepo) ListComments(ctx context.Context, postID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.content, c.answer_to, c.created_at,
		       (SELECT COUNT(*) FROM comment_likes    WHERE comment_id = c.id),
		       (SELECT COUNT(*) FROM comment_dislikes WHERE comment_id = c.id)
		FROM comments c WHERE c.post_id=? ORDER BY c.created_at, c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		var answerTo sql.NullInt64
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &answerTo,
			&c.CreatedAt, &c.Likes, &c.Dislikes); err != nil {
			return nil, err
		}
		if answerTo.Valid {
			v := uint64(answerTo.Int64)
			c.AnswerTo = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReactComment toggles a like/dislike on a comment. Comment reactions keep
// the disjoint-set rule but never touch the writer's score, so any
// AuthorDelta from apply is ignored here.
func (r *PostRepo) ReactComment(ctx context.Context, postID, commentID, userID uint64, apply func(liked, disliked bool) scoring.Result) (scoring.Result, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return scoring.Result{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var lockedID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM comments WHERE id=? AND post_id=? FOR UPDATE",
		commentID, postID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return scoring.Result{}, ErrNotFound
	}
	if err != nil {
		return scoring.Result{}, err
	}

	var liked, disliked bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM comment_likes WHERE comment_id=? AND user_id=?)",
		commentID, userID).Scan(&liked); err != nil {
		return scoring.Result{}, err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM comment_dislikes WHERE comment_id=? AND user_id=?)",
		commentID, userID).Scan(&disliked); err != nil {
		return scoring.Result{}, err
	}

	res := apply(liked, disliked)

	if res.RemoveLike {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM comment_likes WHERE comment_id=? AND user_id=?", commentID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if res.RemoveDislike {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM comment_dislikes WHERE comment_id=? AND user_id=?", commentID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if res.AddLike {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO comment_likes (comment_id, user_id) VALUES (?,?)", commentID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if res.AddDislike {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO comment_dislikes (comment_id, user_id) VALUES (?,?)", commentID, userID); err != nil {
			return scoring.Result{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return scoring.Result{}, err
	}
	return res, nil
}
