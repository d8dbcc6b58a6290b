package lists

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/jalenlum/email-list-backend/internal/store"
)

type DeleteProjectMessage struct {
	UserID    uuid.UUID `json:"-"`
	ProjectID uuid.UUID `json:"project_id"`
}

func (e DeleteProjectMessage) Type() string { return "project.delete" }

type DeleteProjectHandler struct {
	repo store.RepositoryManager
}

func NewDeleteProjectHandler(repo store.RepositoryManager) *DeleteProjectHandler {
	return &DeleteProjectHandler{repo: repo}
}

// Execute removes a project and its collected addresses in one transaction.
// Ownership is re-checked by the delete statement itself, not inferred from
// an earlier read: the project row is removed WHERE id AND user_id match,
// and zero rows deleted aborts the transaction so the already-deleted
// addresses come back.
func (h *DeleteProjectHandler) Execute(ctx context.Context, event DeleteProjectMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during project deletion")
	default:
		return h.execute(ctx, event)
	}
}

func (h *DeleteProjectHandler) execute(ctx context.Context, event DeleteProjectMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := h.repo.ProjectEmails().DeleteByProjectTx(ctx, tx, event.ProjectID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete project emails")
		}

		rows, err := h.repo.Projects().DeleteOwnedTx(ctx, tx, event.ProjectID, event.UserID)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete project")
		}

		if rows == 0 {
			return ErrNotFoundOrNotOwned
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "project deletion transaction failed")
	}

	return nil
}
