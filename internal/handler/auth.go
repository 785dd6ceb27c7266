package handler

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DES-Destry/Unimaster-blog-core/internal/config"
	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/queue"
	"github.com/DES-Destry/Unimaster-blog-core/internal/repository"
	mail_publisher "github.com/DES-Destry/Unimaster-blog-core/internal/service"
	"github.com/DES-Destry/Unimaster-blog-core/internal/utils"
)

// codeCooldown is how long a user waits before a verification or restore
// code can be reissued.
const codeCooldown = time.Hour

// AuthHandler bundles dependencies for the registration and login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Codes *repository.CodeRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, codes *repository.CodeRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Codes: codes}
}

type registrateReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// userPart is the sanitized user shape returned to clients.
type userPart struct {
	ID          uint64       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Privilege   string       `json:"privilege"`
	Score       int64        `json:"score"`
	Verified    bool         `json:"verified"`
	Description string       `json:"description"`
	Alias       string       `json:"alias,omitempty"`
	Location    string       `json:"location,omitempty"`
	AvatarURL   string       `json:"avatar_url,omitempty"`
	Links       []model.Link `json:"links,omitempty"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID: u.ID, Username: u.Username, Email: u.Email,
		Privilege: u.Privilege, Score: u.Score, Verified: u.Verified,
		Description: u.Description, Alias: u.Alias, Location: u.Location,
		AvatarURL: u.AvatarURL, Links: u.Links,
	}
}

func isEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil && strings.Contains(s, "@")
}

// Registrate creates an unverified user and fires the verification mail.
// The account is created even when the mail cannot be published; the reply
// then carries a caveat so the client can offer a resend.
func (h *AuthHandler) Registrate(c echo.Context) error {
	var req registrateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case req.Username == "" || isEmail(req.Username):
		return fail(c, http.StatusBadRequest, "Validation error")
	case !isEmail(req.Email):
		return fail(c, http.StatusBadRequest, "Validation error")
	case len(req.Password) < 8:
		return fail(c, http.StatusBadRequest, "Validation error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return fail(c, http.StatusForbidden, "User with this username already exists")
		case repository.ErrEmailExists:
			return fail(c, http.StatusForbidden, "User with this email already exists")
		}
		return unknown(c, err)
	}

	msg := "User added successful!"
	if err := issueAndPublishCode(ctx, h.Codes, uid, req.Username, req.Email, queue.MailVerification); err != nil {
		// Fire-and-forget: registration stands, the client is told the
		// verification mail is pending.
		msg = "User added successful, but verification email was not sent"
	}

	token, err := utils.NewUserToken(h.Cfg.JWTSecret, utils.Identity{Username: req.Username, Email: req.Email}, h.Cfg.TokenTTLHours)
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, msg, echo.Map{"token": token})
}

// Login accepts a username or an email in the login field.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Login == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, strings.TrimSpace(req.Login))
	if err == repository.ErrNotFound {
		return fail(c, http.StatusUnauthorized, "Incorrect credentials")
	}
	if err != nil {
		return unknown(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Incorrect credentials")
	}

	token, err := utils.NewUserToken(h.Cfg.JWTSecret, utils.Identity{Username: u.Username, Email: u.Email}, h.Cfg.TokenTTLHours)
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "Login successful", echo.Map{"token": token, "user": toUserPart(u)})
}

// issueAndPublishCode stores a code row and hands the mail event to the
// broker. ErrCodeCooldown propagates so callers can answer 409. Shared
// between registration and the user handler's resend endpoints.
func issueAndPublishCode(ctx context.Context, codes *repository.CodeRepo, userID uint64, username, email, kind string) error {
	code, err := utils.NewCode(16)
	if err != nil {
		return err
	}
	if err := codes.Issue(ctx, userID, kind, code, codeCooldown); err != nil {
		return err
	}
	return mail_publisher.PublishCodeMail(ctx, queue.CodeMailEvent{
		Kind:     kind,
		Email:    email,
		Username: username,
		Code:     code,
		IssuedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
