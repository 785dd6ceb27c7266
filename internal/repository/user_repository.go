package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/privilege"
	"github.com/DES-Destry/Unimaster-blog-core/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,privilege,score,verified,description,alias,location,avatar_url,links,created_at,updated_at"

// Create inserts a fresh unverified user with the default privilege and
// score 0, and returns its ID. Username/email uniqueness is enforced by the
// table; violations surface as ErrUsernameExists / ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, privilege, description) VALUES (?,?,?,?,?)",
		username, email, hash, privilege.Default, model.DefaultDescription)
	if err != nil {
		if dup := dupKeyError(err); dup != nil {
			return 0, dup
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// dupKeyError maps a MySQL 1062 duplicate-key error to the matching
// sentinel, or nil when err is something else. The key name decides which
// column collided; the duplicated value itself may contain anything.
func dupKeyError(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "1062") {
		return nil
	}
	if strings.Contains(msg, "uq_users_email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}

func (r *UserRepo) scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var alias, location, avatar sql.NullString
	var links []byte
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Privilege, &u.Score,
		&u.Verified, &u.Description, &alias, &location, &avatar, &links, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	if err != nil {
		return u, err
	}
	u.Alias = alias.String
	u.Location = location.String
	u.AvatarURL = avatar.String
	if len(links) > 0 {
		if err := json.Unmarshal(links, &u.Links); err != nil {
			return u, err
		}
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByLogin resolves a login that may hold either a username or an email,
// the way the login and delete endpoints accept it.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (model.User, error) {
	if strings.Contains(login, "@") {
		if u, err := r.GetByEmail(ctx, login); err == nil {
			return u, nil
		}
	}
	return r.GetByUsername(ctx, login)
}

// Identity lookups below back the JWT middleware: a token is only valid
// while both claims still match the same row.
func (r *UserRepo) GetByIdentity(ctx context.Context, username, email string) (model.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? AND email=? LIMIT 1", username, email))
}

func (r *UserRepo) updateField(ctx context.Context, id uint64, column string, value any) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET "+column+"=? WHERE id=?", value, id)
	return err
}

func (r *UserRepo) UpdateDescription(ctx context.Context, id uint64, v string) error {
	return r.updateField(ctx, id, "description", v)
}

func (r *UserRepo) UpdateAlias(ctx context.Context, id uint64, v string) error {
	return r.updateField(ctx, id, "alias", v)
}

func (r *UserRepo) UpdateLocation(ctx context.Context, id uint64, v string) error {
	return r.updateField(ctx, id, "location", v)
}

func (r *UserRepo) UpdateAvatarURL(ctx context.Context, id uint64, v string) error {
	return r.updateField(ctx, id, "avatar_url", v)
}

func (r *UserRepo) UpdateLinks(ctx context.Context, id uint64, links []model.Link) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return err
	}
	return r.updateField(ctx, id, "links", raw)
}

func (r *UserRepo) UpdatePrivilege(ctx context.Context, id uint64, priv string) error {
	return r.updateField(ctx, id, "privilege", priv)
}

// UpdatePassword stores a new bcrypt hash for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	return r.updateField(ctx, id, "password_hash", hash)
}

// UpdateUsername renames the user and appends the history record in one
// transaction, so the cooldown window can never lose its evidence.
func (r *UserRepo) UpdateUsername(ctx context.Context, id uint64, oldName, newName string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE users SET username=? WHERE id=?", newName, id); err != nil {
		if dup := dupKeyError(err); dup != nil {
			return dup
		}
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO username_changes (user_id, old_username, new_username) VALUES (?,?,?)",
		id, oldName, newName); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes the user row. Posts, reactions, comments, history and
// codes go with it via ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
