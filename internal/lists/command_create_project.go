package lists

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/jalenlum/email-list-backend/internal/store"
)

type CreateProjectMessage struct {
	UserID      uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func (e CreateProjectMessage) Type() string { return "project.create" }

// Validate will run validation rules
func (e CreateProjectMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Description, validation.Length(0, 2000)),
	)
}

type CreateProjectHandler struct {
	repo store.RepositoryManager
}

func NewCreateProjectHandler(repo store.RepositoryManager) *CreateProjectHandler {
	return &CreateProjectHandler{repo: repo}
}

func (h *CreateProjectHandler) Execute(ctx context.Context, event CreateProjectMessage) (*store.Project, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during project creation")
	default:
		return h.execute(ctx, event)
	}
}

func (h *CreateProjectHandler) execute(ctx context.Context, event CreateProjectMessage) (*store.Project, error) {
	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, ErrMissingFields.Category, ErrMissingFields.Message).
			WithTextCode(ErrMissingFields.TextCode).
			WithCode(ErrMissingFields.Code)
	}

	if event.UserID == uuid.Nil {
		return nil, goerrors.New("user id is required", goerrors.CategoryBadInput)
	}

	project, err := h.repo.Projects().Create(ctx, &store.Project{
		UserID:      event.UserID,
		Name:        event.Name,
		Description: event.Description,
	})

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create project")
	}

	return project, nil
}
