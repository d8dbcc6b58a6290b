package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalenlum/email-list-backend/internal/auth"
	"github.com/jalenlum/email-list-backend/internal/store"
)

func registerVerifiedUser(t *testing.T, repo store.RepositoryManager, username, email, password string, verified bool) *store.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user, err := repo.Users().Register(context.Background(), &store.User{
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: verified,
	})
	require.NoError(t, err)

	return user
}

func TestAuther_Login(t *testing.T) {
	repo := setupManager(t)
	auther := auth.NewAuthenticator(repo, testConfig{})
	ctx := context.Background()

	registerVerifiedUser(t, repo, "alice", "alice@example.com", "secret123", true)
	registerVerifiedUser(t, repo, "bob", "bob@example.com", "secret123", false)

	t.Run("login with email", func(t *testing.T) {
		token, expiresAt, err := auther.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("login with username", func(t *testing.T) {
		token, _, err := auther.Login(ctx, "alice", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("unknown identifier and wrong password are indistinguishable", func(t *testing.T) {
		_, _, unknownErr := auther.Login(ctx, "nobody@example.com", "secret123")
		_, _, wrongPassErr := auther.Login(ctx, "alice@example.com", "not-the-password")

		assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongPassErr, auth.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	})

	t.Run("unverified account cannot sign in", func(t *testing.T) {
		_, _, err := auther.Login(ctx, "bob@example.com", "secret123")
		assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
	})
}

func TestAuther_SessionFromToken(t *testing.T) {
	repo := setupManager(t)
	auther := auth.NewAuthenticator(repo, testConfig{})
	ctx := context.Background()

	user := registerVerifiedUser(t, repo, "alice", "alice@example.com", "secret123", true)

	token, _, err := auther.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	claims, err := auther.SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID())

	t.Run("garbage token", func(t *testing.T) {
		_, err := auther.SessionFromToken("garbage")
		assert.Error(t, err)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other := auth.NewAuthenticator(repo, testConfig{signingKey: "other-key"})
		forged, _, err := other.TokenService().Generate(user.ID.String())
		require.NoError(t, err)

		_, err = auther.SessionFromToken(forged)
		assert.Error(t, err)
	})
}
