package api

import (
	"strings"

	"github.com/example/todo-backend/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store caller claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware is the authorization guard for protected routes: it
// extracts the bearer credential, resolves it to a user identity through
// the auth module, and stores the claims for handlers. Every failure gets
// the same 401 body; a missing header, a malformed one and a bad token are
// indistinguishable from the outside.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reject := func() error {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		token, ok := strings.CutPrefix(c.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			return reject()
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return reject()
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}
