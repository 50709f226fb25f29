package tracking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhub/gateway/internal/domain/shared"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusTesting    TaskStatus = "testing"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the task status is a known value
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusTesting, TaskStatusCompleted:
		return true
	}
	return false
}

// IsOpen returns true for statuses that still require work
func (s TaskStatus) IsOpen() bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress
}

// Task is a read-only view of an upstream task record.
// The gateway never mutates tasks; it only folds them into summaries.
type Task struct {
	ID                int64
	ProjectID         int64
	ProjectName       string
	Title             string
	Description       string
	Status            TaskStatus
	BillableHours     *decimal.Decimal
	ProductivityHours decimal.Decimal
	HourlyRate        decimal.Decimal
	Earnings          decimal.Decimal
	IsPaid            bool
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// NewTask validates a task record at the ingestion boundary.
// Unknown statuses are rejected rather than coerced.
func NewTask(id, projectID int64, title string, status TaskStatus) (*Task, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Task id must be positive")
	}
	if projectID <= 0 {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Task project id must be positive")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_ENUM_VALUE", "Unknown task status: "+string(status))
	}
	return &Task{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Status:    status,
	}, nil
}

// ActivityTime returns the timestamp used for recency ordering:
// updated_at when present, created_at otherwise.
func (t *Task) ActivityTime() time.Time {
	if t.UpdatedAt != nil && !t.UpdatedAt.IsZero() {
		return *t.UpdatedAt
	}
	return t.CreatedAt
}
