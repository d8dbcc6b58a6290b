package lists

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/jalenlum/email-list-backend/internal/store"
)

type ListEmailsMessage struct {
	UserID    uuid.UUID `json:"-"`
	ProjectID uuid.UUID `json:"project_id"`
}

func (e ListEmailsMessage) Type() string { return "project_email.list" }

type ListEmailsHandler struct {
	repo store.RepositoryManager
}

func NewListEmailsHandler(repo store.RepositoryManager) *ListEmailsHandler {
	return &ListEmailsHandler{repo: repo}
}

// Execute returns the addresses collected for a project the caller owns.
func (h *ListEmailsHandler) Execute(ctx context.Context, event ListEmailsMessage) ([]*store.ProjectEmail, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during email listing")
	default:
		return h.execute(ctx, event)
	}
}

func (h *ListEmailsHandler) execute(ctx context.Context, event ListEmailsMessage) ([]*store.ProjectEmail, error) {
	if _, err := h.repo.Projects().GetOwned(ctx, event.ProjectID, event.UserID); err != nil {
		if goerrors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFoundOrNotOwned
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up project")
	}

	records, err := h.repo.ProjectEmails().ListByProject(ctx, event.ProjectID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list project emails")
	}

	return records, nil
}
