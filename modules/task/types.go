package task

import (
	"context"
	"time"

	domain "github.com/example/todo-backend/domain/task"
)

// CreateTaskRequest is the request for creating a task. OwnerID is set from
// the authenticated caller by the transport layer; client payloads cannot
// supply it.
type CreateTaskRequest struct {
	OwnerID     string           `json:"owner_id"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Priority    *domain.Priority `json:"priority,omitempty"`
	DueDate     *domain.Date     `json:"due_date,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID  string `json:"task_id"`
	OwnerID string `json:"owner_id"`
}

// UpdateTaskRequest is the request for a partial task update. Nil fields
// are left untouched on the stored task.
type UpdateTaskRequest struct {
	TaskID      string           `json:"task_id"`
	OwnerID     string           `json:"owner_id"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Priority    *domain.Priority `json:"priority,omitempty"`
	DueDate     *domain.Date     `json:"due_date,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID  string `json:"task_id"`
	OwnerID string `json:"owner_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// ListTasksRequest is the request for listing an owner's tasks.
type ListTasksRequest struct {
	OwnerID   string           `json:"owner_id"`
	Skip      int              `json:"skip"`
	Limit     int              `json:"limit"`
	Completed *bool            `json:"completed,omitempty"`
	Priority  *domain.Priority `json:"priority,omitempty"`
}

// ListTasksResponse is the paginated response for listing tasks. Total
// reflects the filtered set before slicing.
type ListTasksResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Priority    domain.Priority `json:"priority"`
	DueDate     *domain.Date    `json:"due_date,omitempty"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TaskPort is the interface driving adapters (the HTTP API) use to reach
// the task domain.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	GetTask(ctx context.Context, taskID, ownerID string) (*TaskResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, taskID, ownerID string) error
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
}

// UserPort is the slice of the auth module the task domain needs: checking
// that a task owner still exists.
type UserPort interface {
	ValidateUser(ctx context.Context, userID string) (bool, error)
}
