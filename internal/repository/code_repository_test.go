package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestConsumeVerificationCommitsCodeAndFlagTogether(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT code FROM user_codes").
		WithArgs(uint64(7), "verification").
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("c0de"))
	mock.ExpectExec("DELETE FROM user_codes").
		WithArgs(uint64(7), "verification").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET verified").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := NewCodeRepo(db).ConsumeVerification(context.Background(), 7, "c0de"); err != nil {
		t.Fatalf("ConsumeVerification: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConsumeVerificationWrongCodeRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT code FROM user_codes").
		WithArgs(uint64(7), "verification").
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("real"))
	mock.ExpectRollback()

	if err := NewCodeRepo(db).ConsumeVerification(context.Background(), 7, "guess"); err != ErrCodeMismatch {
		t.Fatalf("ConsumeVerification = %v, want ErrCodeMismatch", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConsumeVerificationByCodeUnknownCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM user_codes").
		WithArgs("verification", "nope").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if _, err := NewCodeRepo(db).ConsumeVerificationByCode(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("ConsumeVerificationByCode = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
