// Package payments verifies incoming payment-provider webhooks. Both
// providers sign the raw request body with HMAC-SHA256 but format the
// signature header differently.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrBadSignature = errors.New("webhook signature verification failed")

// VerifyPaddle checks a Paddle-Signature header of the form
// "ts=<unix>;h1=<hex>". The signed payload is "<ts>:<raw body>".
func VerifyPaddle(body []byte, header, secret string) error {
	var ts, h1 string
	for _, part := range strings.Split(header, ";") {
		k, v, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "h1":
			h1 = v
		}
	}
	if ts == "" || h1 == "" {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte(":"))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(h1)) {
		return ErrBadSignature
	}
	return nil
}

// VerifyDodo checks standard-webhooks style headers: the signature header
// carries space-separated "v1,<base64>" entries, the signed payload is
// "<id>.<timestamp>.<raw body>", and the secret is base64 after an optional
// "whsec_" prefix.
func VerifyDodo(body []byte, id, timestamp, sigHeader, secret string) error {
	if id == "" || timestamp == "" || sigHeader == "" {
		return ErrBadSignature
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		// Secret not base64-encoded; sign with the raw bytes
		key = []byte(secret)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, entry := range strings.Fields(sigHeader) {
		version, sig, found := strings.Cut(entry, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}

	return ErrBadSignature
}
