package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jalenlum/email-list-backend/internal/store"
)

func setupManager(t *testing.T) store.RepositoryManager {
	t.Helper()

	db, err := store.Open(":memory:")
	require.NoError(t, err)

	require.NoError(t, store.InitSchema(context.Background(), db))

	t.Cleanup(func() {
		_ = db.Close()
	})

	repo := store.NewRepositoryManager(db)
	require.NoError(t, repo.Validate())

	return repo
}

type testConfig struct {
	signingKey string
}

func (c testConfig) GetSigningKey() string {
	if c.signingKey != "" {
		return c.signingKey
	}
	return "test-signing-key"
}

func (c testConfig) GetTokenExpiration() int { return 1 }
func (c testConfig) GetIssuer() string       { return "test-issuer" }
func (c testConfig) GetAudience() []string   { return nil }

// recordingMailer captures verification dispatches so tests can wait on them.
type recordingMailer struct {
	mu    sync.Mutex
	sends chan struct{}

	To    string
	Token string
	Fail  error
	Calls int
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sends: make(chan struct{}, 8)}
}

func (m *recordingMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	m.mu.Lock()
	m.To = to
	m.Token = token
	m.Calls++
	err := m.Fail
	m.mu.Unlock()

	m.sends <- struct{}{}
	return err
}

func (m *recordingMailer) waitForSend(t *testing.T) {
	t.Helper()

	select {
	case <-m.sends:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for verification email dispatch")
	}
}
