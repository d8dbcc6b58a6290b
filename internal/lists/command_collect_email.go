package lists

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/jalenlum/email-list-backend/internal/store"
)

type CollectEmailMessage struct {
	ProjectID uuid.UUID `json:"-"`
	Email     string    `json:"email"`
}

func (e CollectEmailMessage) Type() string { return "project_email.collect" }

// Validate will run validation rules
func (e CollectEmailMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Email, validation.Required, validation.Length(3, 100), is.Email),
	)
}

// CollectEmailHandler serves the public collection endpoint: no caller
// authentication, only the project's existence gates the insert.
type CollectEmailHandler struct {
	repo store.RepositoryManager
}

func NewCollectEmailHandler(repo store.RepositoryManager) *CollectEmailHandler {
	return &CollectEmailHandler{repo: repo}
}

func (h *CollectEmailHandler) Execute(ctx context.Context, event CollectEmailMessage) (*store.ProjectEmail, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during email collection")
	default:
		return h.execute(ctx, event)
	}
}

func (h *CollectEmailHandler) execute(ctx context.Context, event CollectEmailMessage) (*store.ProjectEmail, error) {
	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, ErrMissingFields.Category, ErrMissingFields.Message).
			WithTextCode(ErrMissingFields.TextCode).
			WithCode(ErrMissingFields.Code)
	}

	if _, err := h.repo.Projects().GetByID(ctx, event.ProjectID); err != nil {
		if goerrors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up project")
	}

	exists, err := h.repo.ProjectEmails().Exists(ctx, event.ProjectID, event.Email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	record, err := h.repo.ProjectEmails().Add(ctx, &store.ProjectEmail{
		ProjectID: event.ProjectID,
		Email:     event.Email,
	})

	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not collect email")
	}

	return record, nil
}
