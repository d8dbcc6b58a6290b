// Package config loads process configuration from the environment. Flags in
// cmd/server may override individual values.
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr    string
	DatabaseDSN string
	BaseURL     string

	SigningKey      string
	TokenExpiration int // hours
	Issuer          string
	Audience        []string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

// Load reads configuration from the environment, applying defaults for
// everything except the signing secret.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		DatabaseDSN:     envOr("DATABASE_DSN", "file:email-list.db?cache=shared"),
		BaseURL:         envOr("BASE_URL", "http://localhost:8080"),
		SigningKey:      os.Getenv("JWT_SIGNING_KEY"),
		TokenExpiration: 1,
		Issuer:          envOr("JWT_ISSUER", "email-list-backend"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        587,
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		MailFrom:        os.Getenv("MAIL_FROM"),
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.SMTPPort = port
	}

	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("JWT_SIGNING_KEY is required")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// The getters below satisfy the auth.Config interface.

func (c *Config) GetSigningKey() string   { return c.SigningKey }
func (c *Config) GetTokenExpiration() int { return c.TokenExpiration }
func (c *Config) GetIssuer() string       { return c.Issuer }
func (c *Config) GetAudience() []string   { return c.Audience }
