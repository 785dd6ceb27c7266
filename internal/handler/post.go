package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DES-Destry/Unimaster-blog-core/internal/config"
	"github.com/DES-Destry/Unimaster-blog-core/internal/middleware"
	"github.com/DES-Destry/Unimaster-blog-core/internal/privilege"
	"github.com/DES-Destry/Unimaster-blog-core/internal/repository"
	"github.com/DES-Destry/Unimaster-blog-core/internal/scoring"
)

// minPostContent matches the original minimum post body length.
const minPostContent = 25

// PostHandler bundles dependencies for the post endpoints.
type PostHandler struct {
	Cfg   config.Config
	Posts *repository.PostRepo
}

func NewPostHandler(cfg config.Config, p *repository.PostRepo) *PostHandler {
	return &PostHandler{Cfg: cfg, Posts: p}
}

type writePostReq struct {
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

func (h *PostHandler) WritePost(c echo.Context) error {
	var req writePostReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	if strings.TrimSpace(req.Description) == "" || len(req.Content) < minPostContent {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Posts.Create(ctx, u.ID, req.Description, req.Content, req.Tags)
	if err != nil {
		return unknown(c, err)
	}
	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "Post created", echo.Map{"post": post})
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Validation error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return unknown(c, err)
	}
	comments, err := h.Posts.ListComments(ctx, id)
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "", echo.Map{"post": post, "comments": comments})
}

type editPostReq struct {
	PostID      uint64   `json:"postId"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

// EditPost rewrites a post's fields. Only the writer may edit.
func (h *PostHandler) EditPost(c echo.Context) error {
	var req editPostReq
	if err := c.Bind(&req); err != nil || req.PostID == 0 {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	if strings.TrimSpace(req.Description) == "" || len(req.Content) < minPostContent {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, req.PostID)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return unknown(c, err)
	}
	if post.WriterID != u.ID {
		return fail(c, http.StatusForbidden, privilege.ReasonAccessDenied)
	}

	if err := h.Posts.Update(ctx, req.PostID, req.Description, req.Content, req.Tags); err != nil {
		return unknown(c, err)
	}
	post, err = h.Posts.GetByID(ctx, req.PostID)
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "Post updated", echo.Map{"post": post})
}

// DeletePost removes a post. The writer may delete their own post; a First
// Developer may delete any.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return unknown(c, err)
	}
	if post.WriterID != u.ID && u.Privilege != privilege.FirstDeveloper {
		return fail(c, http.StatusForbidden, privilege.ReasonAccessDenied)
	}

	if err := h.Posts.Delete(ctx, id); err != nil {
		return unknown(c, err)
	}
	return ok(c, "Post has been deleted", echo.Map{"deleted": post})
}

// ----- reactions -----

type reactReq struct {
	PostID uint64 `json:"postId"`
}

func (h *PostHandler) react(c echo.Context, apply func(liked, disliked bool) scoring.Result) error {
	var req reactReq
	if err := c.Bind(&req); err != nil || req.PostID == 0 {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Posts.React(ctx, req.PostID, u.ID, apply)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "Reaction applied", echo.Map{
		"liked":      res.NowLiked,
		"disliked":   res.NowDisliked,
		"scoreDelta": res.AuthorDelta,
	})
}

// LikePost toggles the caller's like on a post. The membership change and
// the writer's score delta commit atomically.
func (h *PostHandler) LikePost(c echo.Context) error {
	return h.react(c, scoring.ApplyLike)
}

// DislikePost is the mirror of LikePost.
func (h *PostHandler) DislikePost(c echo.Context) error {
	return h.react(c, scoring.ApplyDislike)
}

// ----- comments -----

type commentReq struct {
	PostID   uint64  `json:"postId"`
	Content  string  `json:"content"`
	AnswerTo *uint64 `json:"answerTo,omitempty"`
}

func (h *PostHandler) CommentPost(c echo.Context) error {
	var req commentReq
	if err := c.Bind(&req); err != nil || req.PostID == 0 || strings.TrimSpace(req.Content) == "" {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Posts.AddComment(ctx, req.PostID, u.ID, req.Content, req.AnswerTo)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "Comment added", echo.Map{"commentId": id})
}

type commentReactReq struct {
	PostID    uint64 `json:"postId"`
	CommentID uint64 `json:"commentId"`
}

func (h *PostHandler) reactComment(c echo.Context, apply func(liked, disliked bool) scoring.Result) error {
	var req commentReactReq
	if err := c.Bind(&req); err != nil || req.PostID == 0 || req.CommentID == 0 {
		return fail(c, http.StatusBadRequest, "Validation error")
	}
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Posts.ReactComment(ctx, req.PostID, req.CommentID, u.ID, apply)
	if err == repository.ErrNotFound {
		return fail(c, http.StatusNotFound, "Comment not found")
	}
	if err != nil {
		return unknown(c, err)
	}
	return ok(c, "Reaction applied", echo.Map{
		"liked":    res.NowLiked,
		"disliked": res.NowDisliked,
	})
}

// LikeComment and DislikeComment toggle comment reactions. Comment
// reactions never move the writer's score.
func (h *PostHandler) LikeComment(c echo.Context) error {
	return h.reactComment(c, scoring.ApplyLike)
}

func (h *PostHandler) DislikeComment(c echo.Context) error {
	return h.reactComment(c, scoring.ApplyDislike)
}
