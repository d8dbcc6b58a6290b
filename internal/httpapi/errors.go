package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/jalenlum/email-list-backend/internal/auth"
)

// errorResponse is the single error envelope every failure path goes
// through, so handlers can return errors and still guarantee exactly one
// response per request.
type errorResponse struct {
	Error    string `json:"error"`
	TextCode string `json:"text_code,omitempty"`
}

// newErrorHandler maps rich errors to HTTP responses. Internal causes are
// logged and replaced with a generic message; categories carry the status.
func newErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			if fiberErr, ok := err.(*fiber.Error); ok {
				return c.Status(fiberErr.Code).JSON(errorResponse{Error: fiberErr.Message})
			}
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := richErr.Code
		if status == 0 {
			status = fiber.StatusInternalServerError
		}

		message := richErr.Message
		if richErr.Category == errors.CategoryInternal {
			// never leak persistence or transport details to the caller
			logger.Error("internal error",
				"error", err,
				"path", c.Path(),
				"method", c.Method(),
			)
			message = "internal server error"
		}

		return c.Status(status).JSON(errorResponse{
			Error:    message,
			TextCode: richErr.TextCode,
		})
	}
}
