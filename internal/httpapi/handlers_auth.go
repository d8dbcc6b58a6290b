package httpapi

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"

	"github.com/jalenlum/email-list-backend/internal/auth"
)

// SignupRequest payload
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(c *fiber.Ctx) error {
	payload := new(SignupRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, auth.ErrMissingFields.Category, auth.ErrMissingFields.Message).
			WithTextCode(auth.ErrMissingFields.TextCode).
			WithCode(auth.ErrMissingFields.Code)
	}

	if s.debug {
		fmt.Println("======= SIGNUP ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=====================")
	}

	user, err := s.signup.Execute(c.UserContext(), auth.SignupMessage{
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  payload.Password,
		UseHashid: s.hashIDs,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

func (s *Server) handleVerify(c *fiber.Ctx) error {
	token := c.Query("token")

	if _, err := s.verify.Execute(c.UserContext(), auth.VerifyEmailMessage{Token: token}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "email verified",
	})
}

// SigninRequest payload. Identifier is a username or an email; anything
// containing "@" is looked up as an email.
type SigninRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate will run validation rules
func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (s *Server) handleSignin(c *fiber.Ctx) error {
	payload := new(SigninRequest)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, auth.ErrMissingFields.Category, auth.ErrMissingFields.Message).
			WithTextCode(auth.ErrMissingFields.TextCode).
			WithCode(auth.ErrMissingFields.Code)
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, auth.ErrMissingFields.Category, auth.ErrMissingFields.Message).
			WithTextCode(auth.ErrMissingFields.TextCode).
			WithCode(auth.ErrMissingFields.Code)
	}

	token, expiresAt, err := s.auther.Login(c.UserContext(), payload.Identifier, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

func (s *Server) handleDeleteAccount(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return auth.ErrMissingCredentials
	}

	if err := s.deleteAccount.Execute(c.UserContext(), auth.DeleteAccountMessage{UserID: userID}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "account deleted",
	})
}
