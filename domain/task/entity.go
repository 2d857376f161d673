package task

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Priority is the closed set of task priority levels. Unknown values are
// rejected at the JSON boundary instead of silently defaulting.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown priority values at the decode boundary.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("priority must be a string: %w", err)
	}
	v := Priority(s)
	if !v.Valid() {
		return fmt.Errorf("invalid priority %q: must be one of low, medium, high", s)
	}
	*p = v
	return nil
}

// Date is a calendar date without a time component, rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON parses a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("due_date must be a string: %w", err)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer for database storage.
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return fmt.Errorf("failed to scan date %q: %w", v, err)
		}
		d.Time = t
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("unsupported date type %T", value)
	}
}

// Task is an owned work item. OwnerID is the isolation boundary: every
// query against this entity is scoped by it.
type Task struct {
	ID          string   `gorm:"primaryKey;size:36"`
	OwnerID     string   `gorm:"size:36;not null;index"`
	Title       string   `gorm:"size:200;not null"`
	Description *string  `gorm:"size:2000"`
	Priority    Priority `gorm:"size:10;not null;default:medium;index"`
	DueDate     *Date    `gorm:"type:date"`
	Completed   bool     `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
