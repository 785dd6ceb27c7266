package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a bearer token fails signature or claim
// validation.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the pair of claims an access token is bound to. A token
// becomes worthless the moment either value changes (e.g. after a username
// change), which is why those endpoints reissue tokens.
type Identity struct {
	Username string
	Email    string
}

// NewUserToken builds and signs an HS256 JWT carrying the user's username
// and email plus exp/iat. ttlHours controls the token lifetime.
func NewUserToken(secret string, id Identity, ttlHours int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"username": id.Username,
		"email":    id.Email,
		"exp":      now.Add(time.Duration(ttlHours) * time.Hour).Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseUserToken validates the signature and expiry of a bearer token and
// extracts the identity claims. Tokens signed with anything but HMAC are
// rejected.
func ParseUserToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	if username == "" || email == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Username: username, Email: email}, nil
}
