package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DES-Destry/Unimaster-blog-core/internal/config"
	"github.com/DES-Destry/Unimaster-blog-core/internal/middleware"
	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/privilege"
	"github.com/DES-Destry/Unimaster-blog-core/internal/queue"
	"github.com/DES-Destry/Unimaster-blog-core/internal/repository"
	"github.com/DES-Destry/Unimaster-blog-core/internal/username"
	"github.com/DES-Destry/Unimaster-blog-core/internal/utils"
)

// UserHandler bundles dependencies for the profile endpoints.
type UserHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Changes *repository.UsernameChangeRepo
	Codes   *repository.CodeRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, ch *repository.UsernameChangeRepo, codes *repository.CodeRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Changes: ch, Codes: codes}
}

// ----- profile fields -----

type descriptionReq struct {
	NewDescription string `json:"newDescription"`
}

func (h *UserHandler) ChangeDescription(c echo.Context) error {
	var req descriptionReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	if n := len(req.NewDescription); n < 10 || n > 5000 {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateDescription(ctx, u.ID, req.NewDescription); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Description updated", echo.Map{"newDescription": req.NewDescription})
}

type aliasReq struct {
	NewAlias string `json:"newAlias"`
}

func (h *UserHandler) ChangeAlias(c echo.Context) error {
	var req aliasReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.NewAlias) == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateAlias(ctx, u.ID, strings.TrimSpace(req.NewAlias)); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Alias updated", echo.Map{"newAlias": req.NewAlias})
}

type locationReq struct {
	NewLocation string `json:"newLocation"`
}

func (h *UserHandler) ChangeLocation(c echo.Context) error {
	var req locationReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.NewLocation) == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateLocation(ctx, u.ID, strings.TrimSpace(req.NewLocation)); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Location updated", echo.Map{"newLocation": req.NewLocation})
}

type avatarReq struct {
	NewAvatarURL string `json:"newAvatarUrl"`
}

// ChangeAvatar stores an avatar URL. Uploads and resizing are handled by a
// separate asset service.
func (h *UserHandler) ChangeAvatar(c echo.Context) error {
	var req avatarReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.NewAvatarURL) == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateAvatarURL(ctx, u.ID, strings.TrimSpace(req.NewAvatarURL)); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Avatar updated", echo.Map{"newAvatarUrl": req.NewAvatarURL})
}

type linksReq struct {
	Links []model.Link `json:"links"`
}

func (h *UserHandler) ChangeLinks(c echo.Context) error {
	var req linksReq
	if err := c.Bind(&req); err != nil || req.Links == nil {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	for _, l := range req.Links {
		if strings.TrimSpace(l.Site) == "" || strings.TrimSpace(l.Link) == "" {
			return fail(c, http.StatusBadRequest, "Validation error")
		}
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateLinks(ctx, u.ID, req.Links); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Links updated", echo.Map{"links": req.Links})
}

// ----- username change -----

type usernameReq struct {
	NewUsername string `json:"newUsername"`
}

// ChangeUsername renames the current user when the 30-day cooldown and the
// uniqueness check allow it. On success the rename and its history record
// commit together and a fresh token bound to the new name is returned; the
// old token stops resolving immediately.
func (h *UserHandler) ChangeUsername(c echo.Context) error {
	var req usernameReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	req.NewUsername = strings.TrimSpace(req.NewUsername)
	if req.NewUsername == "" || isEmail(req.NewUsername) {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lastChange, err := h.Changes.LastChangeAt(ctx, u.ID)
	if err != nil {
		return unknown(c, err)
	}
	taken := false
	if _, err := h.Users.GetByUsername(ctx, req.NewUsername); err == nil {
		taken = true
	} else if err != repository.ErrNotFound {
		return unknown(c, err)
	}

	d := username.CanChange(u.Username, req.NewUsername, lastChange, taken, time.Now().UTC())
	if !d.Allowed {
		if d.Reason == username.ReasonSameUsername {
			return fail(c, http.StatusBadRequest, d.Reason)
		}
		return failContent(c, http.StatusBadRequest, d.Reason, echo.Map{"left": d.DaysLeft})
	}

	if err := h.Users.UpdateUsername(ctx, u.ID, u.Username, req.NewUsername); err != nil {
		if err == repository.ErrUsernameExists {
			// Lost the race to another rename between check and commit.
			return failContent(c, http.StatusBadRequest, username.ReasonUnavailable, echo.Map{"left": 0})
		}
		return unknown(c, err)
	}

	token, err := utils.NewUserToken(h.Cfg.JWTSecret, utils.Identity{Username: req.NewUsername, Email: u.Email}, h.Cfg.TokenTTLHours)
	if err != nil {
		return unknown(c, err)
	}
	fresh, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "Users username has been changed successful", echo.Map{
		"user":  toUserPart(fresh),
		"token": token,
	})
}

// UsernameHistory lists the current user's renames, newest first.
func (h *UserHandler) UsernameHistory(c echo.Context) error {
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	history, err := h.Changes.History(ctx, u.ID)
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "", echo.Map{"history": history})
}

// ----- password change -----

type passwordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req passwordReq
	if err := c.Bind(&req); err != nil || len(req.NewPassword) < 8 {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)
	if !utils.VerifyPassword(u.PasswordHash, req.OldPassword) {
		return fail(c, http.StatusUnauthorized, privilege.ReasonIncorrectPassword)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, u.ID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Password updated", nil)
}

// ----- privilege administration -----

type privilegeReq struct {
	UsernameToSet string `json:"usernameToSet"`
	NewPrivilege  string `json:"newPrivilege"`
}

// ChangePrivilege applies the privilege authorization rules and, when
// allowed, sets the target's privilege. No score recomputation happens
// here; score-tier levels stay with the scoring engine.
func (h *UserHandler) ChangePrivilege(c echo.Context) error {
	var req privilegeReq
	if err := c.Bind(&req); err != nil || req.UsernameToSet == "" || req.NewPrivilege == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	actor := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var target *model.User
	t, err := h.Users.GetByUsername(ctx, req.UsernameToSet)
	switch {
	case err == nil:
		target = &t
	case err != repository.ErrNotFound:
		return unknown(c, err)
	}

	d := privilege.CanSetPrivilege(actor, target, req.NewPrivilege)
	if !d.Allowed {
		status := http.StatusForbidden
		if d.Reason == privilege.ReasonIncorrectPrivilege || d.Reason == privilege.ReasonIncorrectUsername {
			status = http.StatusBadRequest
		}
		return fail(c, status, d.Reason)
	}

	if err := h.Users.UpdatePrivilege(ctx, target.ID, req.NewPrivilege); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Users privilege has been changed successful", echo.Map{
		"username":     target.Username,
		"newPrivilege": req.NewPrivilege,
	})
}

// ----- account deletion -----

type deleteReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// DeleteUser removes an account. A First Developer deletes anyone without a
// password; everyone else only themselves, with their password.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	var req deleteReq
	if err := c.Bind(&req); err != nil || req.Login == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	actor := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var target *model.User
	t, err := h.Users.GetByLogin(ctx, req.Login)
	switch {
	case err == nil:
		target = &t
	case err != repository.ErrNotFound:
		return unknown(c, err)
	default:
		return fail(c, http.StatusUnauthorized, "User with this email or username not exists")
	}

	d := privilege.CanDeleteUser(actor, target, req.Password)
	if !d.Allowed {
		status := http.StatusForbidden
		if d.Reason == privilege.ReasonIncorrectPassword {
			status = http.StatusUnauthorized
		}
		return fail(c, status, d.Reason)
	}

	if err := h.Users.Delete(ctx, target.ID); err != nil {
		return unknown(c, err)
	}
	return ok(c, "User has been deleted", echo.Map{"deleted": toUserPart(*target)})
}

// ----- email verification -----

// RequestVerification (re)issues the verification code for the current
// user. Resending is limited by the code cooldown.
func (h *UserHandler) RequestVerification(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u.Verified {
		return fail(c, http.StatusBadRequest, "User already verified")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := issueAndPublishCode(ctx, h.Codes, u.ID, u.Username, u.Email, queue.MailVerification)
	switch {
	case err == repository.ErrCodeCooldown:
		return fail(c, http.StatusConflict, "Verification code was requested recently")
	case err != nil:
		return ok(c, "Verification code issued, but email was not sent", nil)
	}
	return ok(c, "Verification email sent", nil)
}

type confirmVerificationReq struct {
	Code string `json:"code"`
}

func (h *UserHandler) ConfirmVerification(c echo.Context) error {
	var req confirmVerificationReq
	if err := c.Bind(&req); err != nil || req.Code == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Codes.ConsumeVerification(ctx, u.ID, req.Code); err {
	case nil:
	case repository.ErrNotFound, repository.ErrCodeMismatch:
		return fail(c, http.StatusBadRequest, "Incorrect verification code")
	default:
		return unknown(c, err)
	}
	return ok(c, "Email verified", nil)
}

// ConfirmVerificationLink confirms the email from the link in the mail.
// No session here: the code alone identifies its owner.
func (h *UserHandler) ConfirmVerificationLink(c echo.Context) error {
	code := strings.TrimSpace(c.QueryParam("code"))
	if code == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Codes.ConsumeVerificationByCode(ctx, code); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusBadRequest, "Incorrect verification code")
		}
		return unknown(c, err)
	}
	return ok(c, "Email verified", nil)
}

// ----- password restore -----

type restoreReq struct {
	Login string `json:"login"`
}

// RequestRestore mails a restore code. Unauthenticated: the caller only
// knows a login.
func (h *UserHandler) RequestRestore(c echo.Context) error {
	var req restoreReq
	if err := c.Bind(&req); err != nil || req.Login == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, strings.TrimSpace(req.Login))
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "User with this email or username not exists")
	}
	if err != nil {
		return unknown(c, err)
	}

	err = issueAndPublishCode(ctx, h.Codes, u.ID, u.Username, u.Email, queue.MailRestore)
	switch {
	case err == repository.ErrCodeCooldown:
		return fail(c, http.StatusConflict, "Restore code was requested recently")
	case err != nil:
		return ok(c, "Restore code issued, but email was not sent", nil)
	}
	return ok(c, "Restore email sent", nil)
}

type confirmRestoreReq struct {
	Login       string `json:"login"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ConfirmRestore(c echo.Context) error {
	var req confirmRestoreReq
	if err := c.Bind(&req); err != nil || req.Login == "" || req.Code == "" || len(req.NewPassword) < 8 {
		return fail(c, http.StatusBadRequest, "Validation error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, strings.TrimSpace(req.Login))
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "User with this email or username not exists")
	}
	if err != nil {
		return unknown(c, err)
	}

	switch err := h.Codes.Consume(ctx, u.ID, model.CodeRestore, req.Code); err {
	case nil:
	case repository.ErrNotFound, repository.ErrCodeMismatch:
		return fail(c, http.StatusBadRequest, "Incorrect restore code")
	default:
		return unknown(c, err)
	}

	if err := h.Users.UpdatePassword(ctx, u.ID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Password restored", nil)
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	return ok(c, "", toUserPart(*u))
}
