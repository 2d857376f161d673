package api

import (
	"strconv"
	"strings"

	taskdomain "github.com/example/todo-backend/domain/task"
	"github.com/example/todo-backend/modules/task"
	"github.com/gofiber/fiber/v2"
)

const defaultListLimit = 100

// ListTasks returns the caller's tasks with optional completed/priority
// filters and skip/limit pagination.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	req := task.ListTasksRequest{
		OwnerID: claims.UserID,
		Skip:    c.QueryInt("skip", 0),
		Limit:   c.QueryInt("limit", defaultListLimit),
	}

	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "Invalid completed filter: must be true or false")
		}
		req.Completed = &completed
	}

	if v := c.Query("priority"); v != "" {
		priority := taskdomain.Priority(v)
		if !priority.Valid() {
			return badRequest(c, "Invalid priority filter: must be one of low, medium, high")
		}
		req.Priority = &priority
	}

	resp, err := h.tasks.ListTasks(c.UserContext(), &req)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateTask creates a task owned by the caller. Any owner field in the
// payload is ignored by construction: the body type has none.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	resp, err := h.tasks.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		OwnerID:     claims.UserID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
		Completed:   body.Completed,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetTask returns one of the caller's tasks. Tasks owned by anyone else
// are indistinguishable from missing ones.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.tasks.GetTask(c.UserContext(), c.Params("id"), claims.UserID)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask applies a partial update to one of the caller's tasks.
// Registered for both PUT and PATCH.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	resp, err := h.tasks.UpdateTask(c.UserContext(), &task.UpdateTaskRequest{
		TaskID:      c.Params("id"),
		OwnerID:     claims.UserID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
		Completed:   body.Completed,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask removes one of the caller's tasks.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.tasks.DeleteTask(c.UserContext(), c.Params("id"), claims.UserID); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleTaskError maps task service errors to HTTP responses. Validation
// failures carry their field message through; ownership mismatches arrive
// already masked as "task not found".
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "title cannot be empty"):
		return badRequest(c, "Title cannot be empty")
	case strings.Contains(errStr, "title must be at most"):
		return badRequest(c, "Title must be at most 200 characters")
	case strings.Contains(errStr, "description must be at most"):
		return badRequest(c, "Description must be at most 2000 characters")
	case strings.Contains(errStr, "invalid priority"):
		return badRequest(c, "Priority must be one of low, medium, high")
	case strings.Contains(errStr, "owner does not exist"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Account no longer exists",
		})
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	default:
		return internalError(c, err)
	}
}
