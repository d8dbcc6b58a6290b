package auth

import (
	"crypto/rand"
	"encoding/hex"

	goerrors "github.com/goliatone/go-errors"
)

// verificationTokenBytes gives a 256-bit token, 64 hex characters on the wire.
const verificationTokenBytes = 32

// NewVerificationToken returns a cryptographically random token to embed in
// a verification link. Uniqueness is probabilistic, not enforced.
func NewVerificationToken() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate verification token")
	}
	return hex.EncodeToString(buf), nil
}
