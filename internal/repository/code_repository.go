package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
)

// CodeRepo persists single-use verification and restore codes. A user holds
// at most one live code per kind; issuing a new one replaces the old row,
// but only after the resend cooldown.
type CodeRepo struct{ DB *sql.DB }

func NewCodeRepo(db *sql.DB) *CodeRepo { return &CodeRepo{DB: db} }

// Issue stores a fresh code of the given kind for the user. When a code of
// the same kind was created within cooldown, ErrCodeCooldown is returned
// and the stored code stays untouched.
func (r *CodeRepo) Issue(ctx context.Context, userID uint64, kind, code string, cooldown time.Duration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		"SELECT created_at FROM user_codes WHERE user_id=? AND kind=? FOR UPDATE",
		userID, kind).Scan(&createdAt)
	switch {
	case err == sql.ErrNoRows:
		// first code of this kind
	case err != nil:
		return err
	case time.Since(createdAt) < cooldown:
		return ErrCodeCooldown
	}

	if _, err := tx.ExecContext(ctx,
		"REPLACE INTO user_codes (user_id, kind, code, created_at) VALUES (?,?,?,UTC_TIMESTAMP())",
		userID, kind, code); err != nil {
		return err
	}
	return tx.Commit()
}

// Consume deletes the stored code when it matches the supplied one.
// ErrCodeMismatch is returned on a wrong code, ErrNotFound when no code of
// that kind is pending.
func (r *CodeRepo) Consume(ctx context.Context, userID uint64, kind, code string) error {
	var stored model.UserCode
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,kind,code,created_at FROM user_codes WHERE user_id=? AND kind=? LIMIT 1",
		userID, kind).Scan(&stored.UserID, &stored.Kind, &stored.Code, &stored.CreatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if stored.Code != code {
		return ErrCodeMismatch
	}
	_, err = r.DB.ExecContext(ctx,
		"DELETE FROM user_codes WHERE user_id=? AND kind=?", userID, kind)
	return err
}

// ConsumeVerification burns the user's pending verification code and marks
// the account verified in one transaction, so a failed flag update can never
// lose a single-use code.
func (r *CodeRepo) ConsumeVerification(ctx context.Context, userID uint64, code string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var stored string
	err = tx.QueryRowContext(ctx,
		"SELECT code FROM user_codes WHERE user_id=? AND kind=? FOR UPDATE",
		userID, model.CodeVerification).Scan(&stored)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return finishVerification(ctx, tx, userID)
}

// ConsumeVerificationByCode resolves a bare code from an emailed link to its
// owner, burns it and marks the account verified. Returns the owner's id,
// or ErrNotFound when no pending verification matches.
func (r *CodeRepo) ConsumeVerificationByCode(ctx context.Context, code string) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var userID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT user_id FROM user_codes WHERE kind=? AND code=? FOR UPDATE",
		model.CodeVerification, code).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if err := finishVerification(ctx, tx, userID); err != nil {
		return 0, err
	}
	return userID, nil
}

func finishVerification(ctx context.Context, tx *sql.Tx, userID uint64) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_codes WHERE user_id=? AND kind=?",
		userID, model.CodeVerification); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET verified=1 WHERE id=?", userID); err != nil {
		return err
	}
	return tx.Commit()
}
