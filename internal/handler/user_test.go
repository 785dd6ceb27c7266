package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/DES-Destry/Unimaster-blog-core/internal/model"
	"github.com/DES-Destry/Unimaster-blog-core/internal/repository"
)

// The emailed link arrives with no session and carries the code in the
// query string; the handler must verify from those alone.
func TestConfirmVerificationLink(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM user_codes").
		WithArgs("verification", "c0de").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	mock.ExpectExec("DELETE FROM user_codes").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET verified").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := &UserHandler{Codes: repository.NewCodeRepo(db)}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/verification/confirm?code=c0de", nil)
	rec := httptest.NewRecorder()

	if err := h.ConfirmVerificationLink(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body serverResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Msg != "Email verified" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmVerificationLinkMissingCode(t *testing.T) {
	h := &UserHandler{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/verification/confirm", nil)
	rec := httptest.NewRecorder()

	if err := h.ConfirmVerificationLink(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUsernameHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "old_username", "new_username", "changed_at"}).
		AddRow(1, 7, "old", "new", time.Now().UTC())
	mock.ExpectQuery("SELECT id,user_id,old_username,new_username,changed_at FROM username_changes").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	h := &UserHandler{Changes: repository.NewUsernameChangeRepo(db)}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/username/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("current_user", &model.User{ID: 7, Username: "new"})

	if err := h.UsernameHistory(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"old_username":"old"`) {
		t.Fatalf("history entry missing from body: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
