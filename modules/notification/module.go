package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/todo-backend/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityEntry is one recorded task lifecycle event.
type ActivityEntry struct {
	TaskID    string    `json:"task_id"`
	OwnerID   string    `json:"owner_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule subscribes to task lifecycle events and keeps an
// in-memory activity trail. Owner ids are logged, never titles beyond the
// creation line, to keep the log low on user content.
type NotificationModule struct {
	activity []ActivityEntry
	mu       sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

// NewModule creates a new NotificationModule.
func NewModule() *NotificationModule {
	return &NotificationModule{
		activity: make([]ActivityEntry, 0),
	}
}

// Name returns the module name.
func (m *NotificationModule) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to the task lifecycle events.
func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskCompleted, TaskDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task created: %s (owner %s, priority %s)", event.TaskID, event.OwnerID, event.Priority)
	m.record(event.TaskID, event.OwnerID, "task_created",
		fmt.Sprintf("Task %q created with priority %s", event.Title, event.Priority))
	return nil
}

func (m *NotificationModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task completed: %s (owner %s)", event.TaskID, event.OwnerID)
	m.record(event.TaskID, event.OwnerID, "task_completed", "Task completed")
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task deleted: %s (owner %s)", event.TaskID, event.OwnerID)
	m.record(event.TaskID, event.OwnerID, "task_deleted", "Task deleted")
	return nil
}

func (m *NotificationModule) record(taskID, ownerID, entryType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.activity = append(m.activity, ActivityEntry{
		TaskID:    taskID,
		OwnerID:   ownerID,
		Type:      entryType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Activity returns a copy of the recorded activity trail.
func (m *NotificationModule) Activity() []ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ActivityEntry, len(m.activity))
	copy(result, m.activity)
	return result
}

// Start marks the module as running.
func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task events")
	return nil
}

// Stop shuts down the module.
func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
