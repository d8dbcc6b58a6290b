package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalenlum/email-list-backend/internal/auth"
	"github.com/jalenlum/email-list-backend/internal/httpapi"
	"github.com/jalenlum/email-list-backend/internal/store"
)

type testConfig struct{}

func (c testConfig) GetSigningKey() string   { return "test-signing-key" }
func (c testConfig) GetTokenExpiration() int { return 1 }
func (c testConfig) GetIssuer() string       { return "test-issuer" }
func (c testConfig) GetAudience() []string   { return nil }

// nopMailer drops verification emails; tests read the token from the store.
type nopMailer struct{}

func (nopMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	return nil
}

func setupServer(t *testing.T) (*httpapi.Server, store.RepositoryManager) {
	t.Helper()

	db, err := store.Open(":memory:")
	require.NoError(t, err)

	require.NoError(t, store.InitSchema(context.Background(), db))

	t.Cleanup(func() {
		_ = db.Close()
	})

	repo := store.NewRepositoryManager(db)
	require.NoError(t, repo.Validate())

	auther := auth.NewAuthenticator(repo, testConfig{})

	return httpapi.New(repo, auther, nopMailer{}), repo
}

func doJSON(t *testing.T, s *httpapi.Server, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

// signupAndVerify walks an account through signup and email verification,
// then signs it in and returns a session token.
func signupAndVerify(t *testing.T, s *httpapi.Server, repo store.RepositoryManager, username string) string {
	t.Helper()

	email := username + "@example.com"

	resp, _ := doJSON(t, s, http.MethodPost, "/api/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	user, err := repo.Users().GetByIdentifier(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user.VerificationToken)

	resp, _ = doJSON(t, s, http.MethodGet, "/api/verify?token="+*user.VerificationToken, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, s, http.MethodPost, "/api/signin", "", map[string]string{
		"identifier": email,
		"password":   "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	return token
}

func TestSignupFlow(t *testing.T) {
	s, repo := setupServer(t)

	resp, body := doJSON(t, s, http.MethodPost, "/api/signup", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["id"])

	// credentials never echo back
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, body, "verification_token")

	t.Run("duplicate email", func(t *testing.T) {
		resp, body := doJSON(t, s, http.MethodPost, "/api/signup", "", map[string]string{
			"username": "alice2",
			"email":    "alice@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "email already exists", body["error"])
	})

	t.Run("duplicate username", func(t *testing.T) {
		resp, body := doJSON(t, s, http.MethodPost, "/api/signup", "", map[string]string{
			"username": "alice",
			"email":    "alice2@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "username already exists", body["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodPost, "/api/signup", "", map[string]string{
			"username": "nobody",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("signin before verification", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodPost, "/api/signin", "", map[string]string{
			"identifier": "alice@example.com",
			"password":   "secret123",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("verification consumes the token", func(t *testing.T) {
		user, err := repo.Users().GetByIdentifier(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user.VerificationToken)
		token := *user.VerificationToken

		resp, body := doJSON(t, s, http.MethodGet, "/api/verify?token="+token, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "email verified", body["message"])

		resp, _ = doJSON(t, s, http.MethodGet, "/api/verify?token="+token, "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("verify without token", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodGet, "/api/verify", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSignupDeterministicIDs(t *testing.T) {
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.InitSchema(context.Background(), db))
	t.Cleanup(func() {
		_ = db.Close()
	})

	repo := store.NewRepositoryManager(db)
	auther := auth.NewAuthenticator(repo, testConfig{})
	s := httpapi.New(repo, auther, nopMailer{}, httpapi.WithDeterministicIDs(true))

	resp, body := doJSON(t, s, http.MethodPost, "/api/signup", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	want, err := hashid.NewUUID("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, want.String(), body["id"])
}

func TestSigninResponses(t *testing.T) {
	s, repo := setupServer(t)
	_ = signupAndVerify(t, s, repo, "alice")

	t.Run("unknown identifier and wrong password share a response", func(t *testing.T) {
		respUnknown, bodyUnknown := doJSON(t, s, http.MethodPost, "/api/signin", "", map[string]string{
			"identifier": "nobody@example.com",
			"password":   "secret123",
		})
		respWrong, bodyWrong := doJSON(t, s, http.MethodPost, "/api/signin", "", map[string]string{
			"identifier": "alice@example.com",
			"password":   "not-the-password",
		})

		assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
		assert.Equal(t, bodyUnknown["error"], bodyWrong["error"])
	})

	t.Run("signin by username", func(t *testing.T) {
		resp, body := doJSON(t, s, http.MethodPost, "/api/signin", "", map[string]string{
			"identifier": "alice",
			"password":   "secret123",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
		assert.NotEmpty(t, body["expires_at"])
	})

	t.Run("missing credentials payload", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodPost, "/api/signin", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAuthGate(t *testing.T) {
	s, _ := setupServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := s.App().Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestProjectLifecycle(t *testing.T) {
	s, repo := setupServer(t)

	aliceToken := signupAndVerify(t, s, repo, "alice")
	bobToken := signupAndVerify(t, s, repo, "bob")

	resp, body := doJSON(t, s, http.MethodPost, "/api/projects", aliceToken, map[string]string{
		"name":        "launch waitlist",
		"description": "pre-launch signups",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID, _ := body["id"].(string)
	require.NotEmpty(t, projectID)

	t.Run("public collection requires no auth", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodPost, "/api/projects/"+projectID+"/emails", "", map[string]string{
			"email": "sub@example.com",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("duplicate collection", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodPost, "/api/projects/"+projectID+"/emails", "", map[string]string{
			"email": "sub@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("collection into unknown project", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodPost, "/api/projects/not-a-uuid/emails", "", map[string]string{
			"email": "sub@example.com",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner lists collected emails", func(t *testing.T) {
		resp, body := doJSON(t, s, http.MethodGet, "/api/projects/"+projectID+"/emails", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		emails, ok := body["emails"].([]any)
		require.True(t, ok)
		assert.Len(t, emails, 1)
	})

	t.Run("non-owner cannot list", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodGet, "/api/projects/"+projectID+"/emails", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-owner cannot delete the project", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodDelete, "/api/projects/"+projectID, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner deletes a collected email", func(t *testing.T) {
		resp, body := doJSON(t, s, http.MethodGet, "/api/projects/"+projectID+"/emails", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		emails := body["emails"].([]any)
		first := emails[0].(map[string]any)
		emailID := first["id"].(string)

		resp, _ = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/projects/%s/emails/%s", projectID, emailID), aliceToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/projects/%s/emails/%s", projectID, emailID), aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner deletes the project", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodDelete, "/api/projects/"+projectID, aliceToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, s, http.MethodGet, "/api/projects/"+projectID+"/emails", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteAccount(t *testing.T) {
	s, repo := setupServer(t)

	aliceToken := signupAndVerify(t, s, repo, "alice")
	bobToken := signupAndVerify(t, s, repo, "bob")

	// alice owns a project with a collected address
	resp, body := doJSON(t, s, http.MethodPost, "/api/projects", aliceToken, map[string]string{
		"name": "waitlist",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceProject := body["id"].(string)

	doJSON(t, s, http.MethodPost, "/api/projects/"+aliceProject+"/emails", "", map[string]string{
		"email": "sub@example.com",
	})

	// bob owns one too
	resp, body = doJSON(t, s, http.MethodPost, "/api/projects", bobToken, map[string]string{
		"name": "bob list",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bobProject := body["id"].(string)

	doJSON(t, s, http.MethodPost, "/api/projects/"+bobProject+"/emails", "", map[string]string{
		"email": "sub@example.com",
	})

	resp, _ = doJSON(t, s, http.MethodDelete, "/api/user", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("account is gone", func(t *testing.T) {
		resp, _ := doJSON(t, s, http.MethodPost, "/api/signin", "", map[string]string{
			"identifier": "alice@example.com",
			"password":   "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("other accounts keep their data", func(t *testing.T) {
		resp, body := doJSON(t, s, http.MethodGet, "/api/projects/"+bobProject+"/emails", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		emails := body["emails"].([]any)
		assert.Len(t, emails, 1)
	})
}
