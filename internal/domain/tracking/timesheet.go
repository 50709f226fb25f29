package tracking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhub/gateway/internal/domain/shared"
)

// TimesheetStatus represents the approval state of a timesheet
type TimesheetStatus string

const (
	TimesheetStatusPending  TimesheetStatus = "pending"
	TimesheetStatusApproved TimesheetStatus = "approved"
	TimesheetStatusRejected TimesheetStatus = "rejected"
)

// IsValid checks if the timesheet status is a known value
func (s TimesheetStatus) IsValid() bool {
	switch s {
	case TimesheetStatusPending, TimesheetStatusApproved, TimesheetStatusRejected:
		return true
	}
	return false
}

// Timesheet is a read-only view of an upstream timesheet record
type Timesheet struct {
	ID        int64
	UserID    int64
	ProjectID int64
	TaskID    *int64
	Date      time.Time
	Hours     decimal.Decimal
	Status    TimesheetStatus
}

// NewTimesheet validates a timesheet record at the ingestion boundary
func NewTimesheet(id, projectID int64, date time.Time, hours decimal.Decimal, status TimesheetStatus) (*Timesheet, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Timesheet id must be positive")
	}
	if hours.IsNegative() {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Timesheet hours cannot be negative")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_ENUM_VALUE", "Unknown timesheet status: "+string(status))
	}
	return &Timesheet{
		ID:        id,
		ProjectID: projectID,
		Date:      date,
		Hours:     hours,
		Status:    status,
	}, nil
}
