package task

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/todo-backend/domain/task"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedTask inserts a task with an explicit creation time so ordering
// assertions are deterministic.
func seedTask(t *testing.T, db *gorm.DB, ownerID, title string, completed bool, priority domain.Priority, createdAt time.Time) *domain.Task {
	t.Helper()

	task := &domain.Task{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Priority:  priority,
		Completed: completed,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func TestTaskRepository_OwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	ownerA := uuid.New().String()
	ownerB := uuid.New().String()
	task := seedTask(t, db, ownerA, "A's task", false, domain.PriorityMedium, time.Now())

	t.Run("owner can fetch", func(t *testing.T) {
		found, err := repo.FindByIDAndOwner(task.ID, ownerA)
		if err != nil {
			t.Fatalf("FindByIDAndOwner() error = %v", err)
		}
		if found.Title != "A's task" {
			t.Errorf("expected title %q, got %q", "A's task", found.Title)
		}
	})

	t.Run("foreign owner sees not found", func(t *testing.T) {
		_, err := repo.FindByIDAndOwner(task.ID, ownerB)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("foreign delete sees not found", func(t *testing.T) {
		err := repo.Delete(task.ID, ownerB)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		// the task is still there for its owner
		if _, err := repo.FindByIDAndOwner(task.ID, ownerA); err != nil {
			t.Errorf("task should survive a foreign delete, got %v", err)
		}
	})

	t.Run("nonexistent id is indistinguishable", func(t *testing.T) {
		_, err := repo.FindByIDAndOwner(uuid.New().String(), ownerB)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTaskRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ownerID := uuid.New().String()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		seedTask(t, db, ownerID, fmt.Sprintf("Task %02d", i), false, domain.PriorityMedium, base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("first page", func(t *testing.T) {
		tasks, total, err := repo.List(ownerID, TaskFilter{}, 0, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 10 {
			t.Errorf("expected 10 tasks, got %d", len(tasks))
		}
		if total != 25 {
			t.Errorf("expected total 25, got %d", total)
		}
		// newest first
		if tasks[0].Title != "Task 24" {
			t.Errorf("expected newest task first, got %q", tasks[0].Title)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		tasks, total, err := repo.List(ownerID, TaskFilter{}, 20, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 5 {
			t.Errorf("expected 5 tasks, got %d", len(tasks))
		}
		if total != 25 {
			t.Errorf("expected total 25, got %d", total)
		}
	})

	t.Run("no limit returns everything", func(t *testing.T) {
		tasks, total, err := repo.List(ownerID, TaskFilter{}, 0, 0)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 25 {
			t.Errorf("expected 25 tasks, got %d", len(tasks))
		}
		if total != 25 {
			t.Errorf("expected total 25, got %d", total)
		}
	})
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ownerID := uuid.New().String()
	otherID := uuid.New().String()

	now := time.Now()
	seedTask(t, db, ownerID, "done high", true, domain.PriorityHigh, now)
	seedTask(t, db, ownerID, "done low", true, domain.PriorityLow, now)
	seedTask(t, db, ownerID, "open high", false, domain.PriorityHigh, now)
	seedTask(t, db, ownerID, "open medium", false, domain.PriorityMedium, now)
	seedTask(t, db, otherID, "foreign done high", true, domain.PriorityHigh, now)

	boolPtr := func(b bool) *bool { return &b }
	prioPtr := func(p domain.Priority) *domain.Priority { return &p }

	t.Run("completed only", func(t *testing.T) {
		tasks, total, err := repo.List(ownerID, TaskFilter{Completed: boolPtr(true)}, 0, 100)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 2 || len(tasks) != 2 {
			t.Errorf("expected 2 completed tasks, got total=%d len=%d", total, len(tasks))
		}
	})

	t.Run("combined filters use AND semantics", func(t *testing.T) {
		tasks, total, err := repo.List(ownerID, TaskFilter{
			Completed: boolPtr(true),
			Priority:  prioPtr(domain.PriorityHigh),
		}, 0, 100)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 1 || len(tasks) != 1 {
			t.Fatalf("expected 1 task, got total=%d len=%d", total, len(tasks))
		}
		if tasks[0].Title != "done high" {
			t.Errorf("expected %q, got %q", "done high", tasks[0].Title)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		tasks, total, err := repo.List(ownerID, TaskFilter{
			Completed: boolPtr(true),
			Priority:  prioPtr(domain.PriorityMedium),
		}, 0, 100)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 0 || len(tasks) != 0 {
			t.Errorf("expected empty result, got total=%d len=%d", total, len(tasks))
		}
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ownerID := uuid.New().String()
	task := seedTask(t, db, ownerID, "to delete", false, domain.PriorityMedium, time.Now())

	if err := repo.Delete(task.ID, ownerID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// hard delete, no tombstone left behind
	var count int64
	if err := db.Model(&domain.Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tasks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected task row to be gone, found %d", count)
	}

	t.Run("repeat delete yields not found", func(t *testing.T) {
		err := repo.Delete(task.ID, ownerID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
