package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
)

// UsernameChangeRepo reads the append-only username history. Writing
// happens inside UserRepo.UpdateUsername so the rename and its record share
// a transaction.
type UsernameChangeRepo struct{ DB *sql.DB }

func NewUsernameChangeRepo(db *sql.DB) *UsernameChangeRepo { return &UsernameChangeRepo{DB: db} }

// LastChangeAt returns the timestamp of the user's most recent rename, or
// nil when the user never renamed.
func (r *UsernameChangeRepo) LastChangeAt(ctx context.Context, userID uint64) (*time.Time, error) {
	var ts time.Time
	err := r.DB.QueryRowContext(ctx,
		"SELECT changed_at FROM username_changes WHERE user_id=? ORDER BY changed_at DESC LIMIT 1",
		userID).Scan(&ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// History lists a user's renames, newest first.
func (r *UsernameChangeRepo) History(ctx context.Context, userID uint64) ([]model.UsernameChange, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,old_username,new_username,changed_at FROM username_changes WHERE user_id=? ORDER BY changed_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UsernameChange
	for rows.Next() {
		var c model.UsernameChange
		if err := rows.Scan(&c.ID, &c.UserID, &c.OldUsername, &c.NewUsername, &c.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
