package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/example/todo-backend/domain/task"
	"github.com/example/todo-backend/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

var (
	// ErrEmptyTitle is returned when the title is empty after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")
	// ErrTitleTooLong is returned when the title exceeds 200 characters.
	ErrTitleTooLong = errors.New("title must be at most 200 characters")
	// ErrDescriptionTooLong is returned when the description exceeds 2000 characters.
	ErrDescriptionTooLong = errors.New("description must be at most 2000 characters")
	// ErrInvalidPriority is returned when the priority is not a known level.
	ErrInvalidPriority = errors.New("invalid priority: must be one of low, medium, high")
	// ErrInvalidOwner is returned when the requesting identity no longer exists.
	ErrInvalidOwner = errors.New("owner does not exist")
)

// TaskService implements owner-scoped task operations over the repository.
type TaskService struct {
	repo     *TaskRepository
	users    UserPort
	eventBus mono.EventBus
}

// NewTaskService creates a new TaskService. eventBus may be nil; events are
// then skipped.
func NewTaskService(repo *TaskRepository, users UserPort, eventBus mono.EventBus) *TaskService {
	return &TaskService{
		repo:     repo,
		users:    users,
		eventBus: eventBus,
	}
}

// Create builds and stores a new task for the given owner. The owner id
// always comes from the verified caller identity, never from the payload.
func (s *TaskService) Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	valid, err := s.users.ValidateUser(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate owner: %w", err)
	}
	if !valid {
		return nil, ErrInvalidOwner
	}

	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	description, err := normalizeDescription(req.Description)
	if err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		priority = *req.Priority
	}

	newTask := &domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     req.OwnerID,
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     req.DueDate,
	}
	if req.Completed != nil {
		newTask.Completed = *req.Completed
	}

	if err := s.repo.Create(newTask); err != nil {
		return nil, err
	}

	s.publishCreated(newTask)

	resp := toTaskResponse(newTask)
	return &resp, nil
}

// Get fetches a task scoped to its owner.
func (s *TaskService) Get(_ context.Context, taskID, ownerID string) (*TaskResponse, error) {
	task, err := s.repo.FindByIDAndOwner(taskID, ownerID)
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

// Update applies a partial update to an owner's task. Only non-nil fields
// change; title and description go through the same normalization as
// Create. Last write wins on concurrent updates.
func (s *TaskService) Update(_ context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.repo.FindByIDAndOwner(req.TaskID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := normalizeTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if req.Description != nil {
		description, err := normalizeDescription(req.Description)
		if err != nil {
			return nil, err
		}
		task.Description = description
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	completedNow := false
	if req.Completed != nil {
		completedNow = !task.Completed && *req.Completed
		task.Completed = *req.Completed
	}

	if err := s.repo.Update(task); err != nil {
		return nil, err
	}

	if completedNow {
		s.publishCompleted(task)
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

// Delete removes an owner's task. Deleting an already-deleted or foreign
// task yields ErrNotFound.
func (s *TaskService) Delete(_ context.Context, taskID, ownerID string) error {
	if err := s.repo.Delete(taskID, ownerID); err != nil {
		return err
	}
	s.publishDeleted(taskID, ownerID)
	return nil
}

// List returns a filtered, paginated page of the owner's tasks with
// pagination metadata derived from the non-materializing total count.
func (s *TaskService) List(_ context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	filter := TaskFilter{
		Completed: req.Completed,
		Priority:  req.Priority,
	}
	tasks, total, err := s.repo.List(req.OwnerID, filter, req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}

	// limit <= 0 collapses to a single page, never a division by zero
	page, totalPages := 1, 1
	if req.Limit > 0 {
		page = req.Skip/req.Limit + 1
		totalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}

	resp := &ListTasksResponse{
		Tasks:      make([]TaskResponse, 0, len(tasks)),
		Total:      total,
		Page:       page,
		PageSize:   req.Limit,
		TotalPages: totalPages,
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}
	return resp, nil
}

func (s *TaskService) publishCreated(task *domain.Task) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		OwnerID:   task.OwnerID,
		Title:     task.Title,
		Priority:  string(task.Priority),
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", task.ID, err)
	}
}

func (s *TaskService) publishCompleted(task *domain.Task) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskCompletedEvent{
		TaskID:      task.ID,
		OwnerID:     task.OwnerID,
		CompletedAt: time.Now(),
	}
	if err := events.TaskCompletedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCompleted event for task %s: %v", task.ID, err)
	}
}

func (s *TaskService) publishDeleted(taskID, ownerID string) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    taskID,
		OwnerID:   ownerID,
		DeletedAt: time.Now(),
	}
	if err := events.TaskDeletedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", taskID, err)
	}
}

// normalizeTitle trims the title and enforces the 1-200 character range.
func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return trimmed, nil
}

// normalizeDescription trims the description; an empty result becomes
// absence of a value.
func normalizeDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	return &trimmed, nil
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
