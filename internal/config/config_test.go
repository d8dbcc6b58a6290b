package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalenlum/email-list-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "file:email-list.db?cache=shared", cfg.DatabaseDSN)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.GetSigningKey())
	assert.Equal(t, 1, cfg.GetTokenExpiration())
	assert.Equal(t, "email-list-backend", cfg.GetIssuer())
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://localhost/app")
	t.Setenv("JWT_ISSUER", "custom-issuer")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "postgres://localhost/app", cfg.DatabaseDSN)
	assert.Equal(t, "custom-issuer", cfg.GetIssuer())
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadRequiresSigningKey(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadSMTPPort(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := config.Load()
	assert.Error(t, err)
}
