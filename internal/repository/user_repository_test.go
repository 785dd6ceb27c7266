package repository

import (
	"errors"
	"testing"
)

func TestDupKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email key",
			err:  errors.New("Error 1062 (23000): Duplicate entry 'a@b.c' for key 'users.uq_users_email'"),
			want: ErrEmailExists,
		},
		{
			name: "username key",
			err:  errors.New("Error 1062 (23000): Duplicate entry 'bob' for key 'users.uq_users_username'"),
			want: ErrUsernameExists,
		},
		{
			// The duplicated value must not influence classification.
			name: "username value mentioning email",
			err:  errors.New("Error 1062 (23000): Duplicate entry 'email_fan' for key 'users.uq_users_username'"),
			want: ErrUsernameExists,
		},
		{
			name: "unrelated error",
			err:  errors.New("Error 1045 (28000): Access denied for user"),
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dupKeyError(tt.err); got != tt.want {
				t.Fatalf("dupKeyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
