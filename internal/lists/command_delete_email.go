package lists

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/jalenlum/email-list-backend/internal/store"
)

type DeleteEmailMessage struct {
	UserID    uuid.UUID `json:"-"`
	ProjectID uuid.UUID `json:"project_id"`
	EmailID   uuid.UUID `json:"email_id"`
}

func (e DeleteEmailMessage) Type() string { return "project_email.delete" }

type DeleteEmailHandler struct {
	repo store.RepositoryManager
}

func NewDeleteEmailHandler(repo store.RepositoryManager) *DeleteEmailHandler {
	return &DeleteEmailHandler{repo: repo}
}

// Execute removes a single collected address. The caller must own the
// parent project; the delete itself keys on (email id, project id) so an
// address under someone else's project never matches.
func (h *DeleteEmailHandler) Execute(ctx context.Context, event DeleteEmailMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during email deletion")
	default:
		return h.execute(ctx, event)
	}
}

func (h *DeleteEmailHandler) execute(ctx context.Context, event DeleteEmailMessage) error {
	if _, err := h.repo.Projects().GetOwned(ctx, event.ProjectID, event.UserID); err != nil {
		if goerrors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFoundOrNotOwned
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up project")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		rows, err := h.repo.ProjectEmails().DeleteTx(ctx, tx, event.EmailID, event.ProjectID)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete project email")
		}

		if rows == 0 {
			return ErrEmailNotFound
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "email deletion transaction failed")
	}

	return nil
}
