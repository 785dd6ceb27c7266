package utils

import "testing"

func TestUserTokenRoundTrip(t *testing.T) {
	id := Identity{Username: "Pineapple", Email: "pineapple@gmail.com"}
	tok, err := NewUserToken("secret", id, 1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	got, err := ParseUserToken("secret", tok)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if got != id {
		t.Fatalf("identity = %+v, want %+v", got, id)
	}
}

func TestUserTokenWrongSecret(t *testing.T) {
	tok, err := NewUserToken("secret", Identity{Username: "a", Email: "a@b.c"}, 1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseUserToken("other", tok); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestUserTokenGarbage(t *testing.T) {
	if _, err := ParseUserToken("secret", "not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func TestPasswordHashVerify(t *testing.T) {
	hash, err := HashPassword("123456789", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "123456789") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "Some rubbish") {
		t.Fatal("wrong password accepted")
	}
}

func TestNewCodeLengthAndUniqueness(t *testing.T) {
	a, err := NewCode(16)
	if err != nil {
		t.Fatalf("new code: %v", err)
	}
	b, err := NewCode(16)
	if err != nil {
		t.Fatalf("new code: %v", err)
	}
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("code lengths = %d, %d; want 32", len(a), len(b))
	}
	if a == b {
		t.Fatal("two codes collided")
	}
}
