package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/repository"
	"github.com/DES-Destry/Unimaster-blog-core/internal/utils"
)

// userKey is the echo context key the authenticated user is stored under.
const userKey = "current_user"

// Identity returns a middleware that validates a Bearer access token and
// resolves its username/email claims to a live user record. A token issued
// before a username change carries stale claims and stops resolving, which
// is exactly the invalidation the rename endpoint relies on. Handlers read
// the user back via CurrentUser.
func Identity(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, err := utils.ParseUserToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.GetByIdentity(ctx, id.Username, id.Email)
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
			}

			c.Set(userKey, &u)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Identity, or nil on
// unauthenticated routes.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}
