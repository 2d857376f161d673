package task

import (
	"errors"
	"fmt"

	domain "github.com/example/todo-backend/domain/task"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a task does not exist for the given owner.
// An id owned by someone else yields the same outcome as a nonexistent id,
// so non-owners can never confirm a task exists.
var ErrNotFound = errors.New("task not found")

// TaskFilter holds optional listing filters. Nil fields are not applied;
// set fields combine with AND semantics.
type TaskFilter struct {
	Completed *bool
	Priority  *domain.Priority
}

// TaskRepository provides owner-scoped task persistence using GORM.
// Every query is bound to an owner id; there is no unscoped access path.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task. The caller is responsible for having forced
// OwnerID from the authenticated identity.
func (r *TaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByIDAndOwner fetches a task by id scoped to its owner. Fetch and
// authorization are one query so there is no gap between them.
func (r *TaskRepository) FindByIDAndOwner(id, ownerID string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// List returns the owner's tasks matching the filter, newest first, sliced
// by skip/limit, plus the total count of the filtered set. The count runs
// as a separate COUNT(*) query so it never materializes the full set.
// limit <= 0 disables the page slice.
func (r *TaskRepository) List(ownerID string, filter TaskFilter, skip, limit int) ([]*domain.Task, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Where("owner_id = ?", ownerID)
		if filter.Completed != nil {
			q = q.Where("completed = ?", *filter.Completed)
		}
		if filter.Priority != nil {
			q = q.Where("priority = ?", *filter.Priority)
		}
		return q
	}

	var total int64
	if err := scope(r.db.Model(&domain.Task{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	q := scope(r.db).Order("created_at DESC")
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var tasks []*domain.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Update persists a task previously loaded through FindByIDAndOwner.
// GORM refreshes UpdatedAt on the write.
func (r *TaskRepository) Update(task *domain.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task by id scoped to its owner. Hard delete; repeating
// after success yields ErrNotFound.
func (r *TaskRepository) Delete(id, ownerID string) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Task{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
