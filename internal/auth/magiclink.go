package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MagicLinkTTLMinutes is how long a login link stays valid.
const MagicLinkTTLMinutes = 15

// NewMagicToken generates a random login token and the bcrypt hash to store
// for it. The plaintext token goes into the emailed link only.
func NewMagicToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	token = hex.EncodeToString(buf)

	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash token: %w", err)
	}

	return token, string(h), nil
}

// VerifyMagicToken reports whether token matches the stored hash.
func VerifyMagicToken(hash, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
