package api

import (
	"log"
	"strings"

	domain "github.com/example/todo-backend/domain/user"
	"github.com/example/todo-backend/modules/auth"
	"github.com/example/todo-backend/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers, driving the auth and task ports.
type Handlers struct {
	auth  auth.AuthPort
	tasks task.TaskPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort) *Handlers {
	return &Handlers{
		auth:  authPort,
		tasks: taskPort,
	}
}

// callerClaims returns the identity the auth middleware stored for this request.
func callerClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}

// Register handles user registration. The new user is logged in directly.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	resp, err := h.auth.Register(c.UserContext(), &auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(TokenResponse{
		UserID:      resp.ID,
		Email:       resp.Email,
		Name:        resp.Name,
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	resp, err := h.auth.Login(c.UserContext(), &auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		UserID:      resp.UserID,
		Email:       resp.Email,
		Name:        resp.Name,
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	})
}

// Logout verifies the presented token. Sessions are stateless, so there is
// nothing to revoke server-side; clients discard the token.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if _, ok := callerClaims(c); !ok {
		return unauthenticated(c)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Logged out successfully",
	})
}

// Profile returns the current user's full identity record. A valid token
// whose user was deleted afterwards yields 404.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	user, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "user not found") {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "User not found",
			})
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	})
}

// DeleteAccount removes the caller's account and all owned tasks.
func (h *Handlers) DeleteAccount(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.auth.DeleteUser(c.UserContext(), claims.UserID); err != nil {
		if strings.Contains(err.Error(), "user not found") {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "User not found",
			})
		}
		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleAuthError maps auth service errors to HTTP responses. Errors cross
// the service container as strings, so matching is on known messages;
// anything unrecognized is logged and masked as a generic 500.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"):
		return badRequest(c, "Invalid email format")
	case strings.Contains(errStr, "password must be at least"):
		return badRequest(c, "Password must be at least 8 characters")
	case strings.Contains(errStr, "password must be at most"):
		return badRequest(c, "Password must be at most 72 characters")
	default:
		return internalError(c, err)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

func internalError(c *fiber.Ctx, err error) error {
	// full detail stays server-side
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
