package httpapi

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jalenlum/email-list-backend/internal/auth"
	"github.com/jalenlum/email-list-backend/internal/lists"
)

// CreateProjectRequest payload
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProject(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return auth.ErrMissingCredentials
	}

	payload := new(CreateProjectRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, lists.ErrMissingFields.Category, lists.ErrMissingFields.Message).
			WithTextCode(lists.ErrMissingFields.TextCode).
			WithCode(lists.ErrMissingFields.Code)
	}

	project, err := s.createProject.Execute(c.UserContext(), lists.CreateProjectMessage{
		UserID:      userID,
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func (s *Server) handleDeleteProject(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return auth.ErrMissingCredentials
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return lists.ErrNotFoundOrNotOwned
	}

	if err := s.deleteProject.Execute(c.UserContext(), lists.DeleteProjectMessage{
		UserID:    userID,
		ProjectID: projectID,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "project deleted",
	})
}

// CollectEmailRequest payload
type CollectEmailRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleCollectEmail(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return lists.ErrProjectNotFound
	}

	payload := new(CollectEmailRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, lists.ErrMissingFields.Category, lists.ErrMissingFields.Message).
			WithTextCode(lists.ErrMissingFields.TextCode).
			WithCode(lists.ErrMissingFields.Code)
	}

	record, err := s.collectEmail.Execute(c.UserContext(), lists.CollectEmailMessage{
		ProjectID: projectID,
		Email:     payload.Email,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (s *Server) handleListEmails(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return auth.ErrMissingCredentials
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return lists.ErrNotFoundOrNotOwned
	}

	records, err := s.listEmails.Execute(c.UserContext(), lists.ListEmailsMessage{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"emails": records,
	})
}

func (s *Server) handleDeleteEmail(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return auth.ErrMissingCredentials
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return lists.ErrNotFoundOrNotOwned
	}

	emailID, err := uuid.Parse(c.Params("emailID"))
	if err != nil {
		return lists.ErrEmailNotFound
	}

	if err := s.deleteEmail.Execute(c.UserContext(), lists.DeleteEmailMessage{
		UserID:    userID,
		ProjectID: projectID,
		EmailID:   emailID,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "email deleted",
	})
}
