package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/jalenlum/email-list-backend/internal/store"
)

type VerifyEmailMessage struct {
	Token string `json:"token"`
}

func (e VerifyEmailMessage) Type() string { return "user.verify_email" }

type VerifyEmailHandler struct {
	repo store.RepositoryManager
}

func NewVerifyEmailHandler(repo store.RepositoryManager) *VerifyEmailHandler {
	return &VerifyEmailHandler{repo: repo}
}

// Execute consumes a verification token, transitioning its holder to
// verified. A token nobody holds, including one already consumed, fails
// with ErrInvalidToken and changes nothing.
func (h *VerifyEmailHandler) Execute(ctx context.Context, event VerifyEmailMessage) (*store.User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during email verification")
	default:
		return h.execute(ctx, event)
	}
}

func (h *VerifyEmailHandler) execute(ctx context.Context, event VerifyEmailMessage) (*store.User, error) {
	if event.Token == "" {
		return nil, ErrInvalidToken
	}

	user := &store.User{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		user, err = h.repo.Users().ConsumeVerificationTokenTx(ctx, tx, event.Token)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrInvalidToken
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to consume verification token")
		}
		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "email verification transaction failed")
	}

	return user, nil
}
