package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewCode returns a hex-encoded single-use code generated from n bytes of
// cryptographically secure random data. Verification and restore mails use
// 16 bytes (32 hex chars).
func NewCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
