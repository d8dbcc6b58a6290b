package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jalenlum/email-list-backend/internal/auth"
)

// userIDKey is the fiber locals key the auth gate stores the caller id
// under. The id is the only thing the gate exposes to handlers.
const userIDKey = "userID"

// requireAuth is the auth gate. A missing header or a non-Bearer scheme is
// "missing credentials"; a forged, malformed, or expired token is "invalid
// credentials". All of them share the 401 class so callers cannot tell
// expiry apart from forgery.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return auth.ErrMissingCredentials
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return auth.ErrMissingCredentials
	}

	claims, err := s.auther.SessionFromToken(parts[1])
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return auth.ErrTokenMalformed
	}

	c.Locals(userIDKey, userID)
	c.SetUserContext(auth.WithUserID(c.UserContext(), userID))

	return c.Next()
}

// callerID returns the authenticated user id stored by requireAuth.
func callerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok
}
