package auth

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"

	"github.com/jalenlum/email-list-backend/internal/store"
)

// mailDispatchTimeout bounds the fire-and-forget verification email send.
const mailDispatchTimeout = 10 * time.Second

type SignupMessage struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UseHashid bool   `json:"-"`
}

func (e SignupMessage) Type() string { return "user.signup" }

// Validate will run validation rules
func (e SignupMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Username, validation.Required, validation.Length(2, 100)),
		validation.Field(&e.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&e.Password, validation.Required, validation.Length(1, 100)),
	)
}

type SignupHandler struct {
	repo   store.RepositoryManager
	mailer VerificationMailer
	logger Logger
}

func NewSignupHandler(repo store.RepositoryManager, mailer VerificationMailer, logger Logger) *SignupHandler {
	if logger == nil {
		logger = defLogger{}
	}
	return &SignupHandler{repo: repo, mailer: mailer, logger: logger}
}

// Execute registers a new user. The duplicate checks are two sequential
// reads before the insert; concurrent signups racing past them are stopped
// by the unique constraints, whose violation maps back to the matching
// duplicate error. The verification email is dispatched after commit and
// its outcome never affects the result.
func (h *SignupHandler) Execute(ctx context.Context, event SignupMessage) (*store.User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during signup")
	default:
		return h.execute(ctx, event)
	}
}

func (h *SignupHandler) execute(ctx context.Context, event SignupMessage) (*store.User, error) {
	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, ErrMissingFields.Category, ErrMissingFields.Message).
			WithTextCode(ErrMissingFields.TextCode).
			WithCode(ErrMissingFields.Code)
	}

	user := &store.User{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.repo.Users().GetByIdentifierTx(ctx, tx, event.Email); err == nil {
			return ErrDuplicateEmail
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
		}

		if _, err := h.repo.Users().GetByIdentifierTx(ctx, tx, event.Username); err == nil {
			return ErrDuplicateUsername
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username uniqueness")
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		token, err := NewVerificationToken()
		if err != nil {
			return err
		}

		user.Username = event.Username
		user.Email = event.Email
		user.PasswordHash = hash
		user.EmailVerified = false
		user.VerificationToken = &token

		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			if store.IsUniqueViolation(err) {
				return duplicateFromConstraint(err)
			}
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "signup transaction failed")
	}

	h.dispatchVerification(user)

	return user, nil
}

// dispatchVerification sends the verification email on its own goroutine
// with a bounded deadline. Failure is logged and swallowed.
func (h *SignupHandler) dispatchVerification(user *store.User) {
	if h.mailer == nil || user.VerificationToken == nil {
		return
	}

	to := user.Email
	token := *user.VerificationToken

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailDispatchTimeout)
		defer cancel()

		if err := h.mailer.SendVerificationEmail(ctx, to, token); err != nil {
			h.logger.Error("verification email dispatch failed", "email", to, "error", err)
			return
		}
		h.logger.Info("verification email dispatched", "email", to)
	}()
}

func duplicateFromConstraint(err error) error {
	if strings.Contains(err.Error(), "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}
