package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// serverResponse is the envelope every endpoint answers with. msg carries
// the human-readable outcome; on denials it holds the stable reason string
// clients branch on. errorMsg only appears for unexpected failures.
type serverResponse struct {
	Success  bool   `json:"success"`
	Msg      string `json:"msg,omitempty"`
	ErrorMsg string `json:"errorMsg,omitempty"`
	Content  any    `json:"content,omitempty"`
}

func ok(c echo.Context, msg string, content any) error {
	return c.JSON(http.StatusOK, serverResponse{Success: true, Msg: msg, Content: content})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, serverResponse{Msg: msg})
}

func failContent(c echo.Context, status int, msg string, content any) error {
	return c.JSON(status, serverResponse{Msg: msg, Content: content})
}

// unknown reports an unexpected collaborator failure (persistence, broker).
func unknown(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, serverResponse{Msg: "Unknown error", ErrorMsg: err.Error()})
}
