package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/jalenlum/email-list-backend/internal/store"
)

type DeleteAccountMessage struct {
	UserID uuid.UUID `json:"user_id"`
}

func (e DeleteAccountMessage) Type() string { return "user.delete_account" }

type DeleteAccountHandler struct {
	repo store.RepositoryManager
}

func NewDeleteAccountHandler(repo store.RepositoryManager) *DeleteAccountHandler {
	return &DeleteAccountHandler{repo: repo}
}

// Execute removes the user and everything hanging off it: collected
// addresses first, then projects, then the user row. The three deletes run
// in one transaction; any failure rolls all of them back.
func (h *DeleteAccountHandler) Execute(ctx context.Context, event DeleteAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during account deletion")
	default:
		return h.execute(ctx, event)
	}
}

func (h *DeleteAccountHandler) execute(ctx context.Context, event DeleteAccountMessage) error {
	if event.UserID == uuid.Nil {
		return goerrors.New("user id is required", goerrors.CategoryBadInput)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := h.repo.ProjectEmails().DeleteByUserTx(ctx, tx, event.UserID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete project emails")
		}

		if err := h.repo.Projects().DeleteByUserTx(ctx, tx, event.UserID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete projects")
		}

		if _, err := h.repo.Users().DeleteByIDTx(ctx, tx, event.UserID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "account deletion transaction failed")
	}

	return nil
}
