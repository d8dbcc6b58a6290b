package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Logger takes a message followed by alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

// TokenService issues and validates session tokens.
type TokenService interface {
	Generate(userID string) (string, time.Time, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// VerificationMailer delivers the verification link for a freshly registered
// user. Implementations must be safe for concurrent use.
type VerificationMailer interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
}

// DefaultLogger returns the stdout fallback logger.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println("[ERR] AUTH " + formatKV(msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println("[WRN] AUTH " + formatKV(msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println("[INF] AUTH " + formatKV(msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println("[DBG] AUTH " + formatKV(msg, args))
}

// formatKV appends key=value pairs to the message. A trailing key without a
// value is printed bare.
func formatKV(msg string, args []any) string {
	var b strings.Builder
	b.WriteString(msg)

	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}

	return b.String()
}
