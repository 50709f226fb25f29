package billing

import (
	"github.com/shopspring/decimal"

	"github.com/workhub/gateway/internal/domain/shared"
)

// WorkTask is one unpaid-work line of a developer's work summary:
// earnings = productivity_hours x hourly_rate, derived upstream.
type WorkTask struct {
	ID                int64
	Title             string
	ProductivityHours decimal.Decimal
	HourlyRate        decimal.Decimal
	Earnings          decimal.Decimal
	IsPaid            bool
}

// WorkSummaryRow is the per-developer, per-project work breakdown used to
// drive voucher creation. One developer appears once per project.
type WorkSummaryRow struct {
	DeveloperID            int64
	DeveloperName          string
	ProjectID              int64
	ProjectName            string
	TotalProductivityHours decimal.Decimal
	HourlyRate             decimal.Decimal
	TotalEarnings          decimal.Decimal
	PaidAmount             decimal.Decimal
	PendingAmount          decimal.Decimal
	Tasks                  []WorkTask
}

// WorkSummaryStats is the rollup over the rows eligible for payment
type WorkSummaryStats struct {
	TotalHours         decimal.Decimal
	TotalEarnings      decimal.Decimal
	TotalPaid          decimal.Decimal
	TotalPending       decimal.Decimal
	EligibleDevelopers int
}

// EligibleRows filters the work summary to rows with pending_amount > 0.
// Fully paid developers are excluded even when they have historical
// vouchers.
func EligibleRows(rows []WorkSummaryRow) []WorkSummaryRow {
	eligible := make([]WorkSummaryRow, 0, len(rows))
	for i := range rows {
		if rows[i].PendingAmount.GreaterThan(decimal.Zero) {
			eligible = append(eligible, rows[i])
		}
	}
	return eligible
}

// SummarizeWork folds eligible work-summary rows into totals. The
// eligible-developer count is over distinct developer ids with
// pending_amount > 0, not rows: a developer pending on two projects
// counts once.
func SummarizeWork(rows []WorkSummaryRow) WorkSummaryStats {
	stats := WorkSummaryStats{
		TotalHours:    decimal.Zero,
		TotalEarnings: decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalPending:  decimal.Zero,
	}
	seen := make(map[int64]struct{})
	for i := range rows {
		row := &rows[i]
		stats.TotalHours = stats.TotalHours.Add(row.TotalProductivityHours)
		stats.TotalEarnings = stats.TotalEarnings.Add(row.TotalEarnings)
		stats.TotalPaid = stats.TotalPaid.Add(row.PaidAmount)
		stats.TotalPending = stats.TotalPending.Add(row.PendingAmount)
		if row.PendingAmount.GreaterThan(decimal.Zero) {
			if _, ok := seen[row.DeveloperID]; !ok {
				seen[row.DeveloperID] = struct{}{}
				stats.EligibleDevelopers++
			}
		}
	}
	return stats
}

// SelectedTask is one task chosen for voucher creation, carrying the
// project it belongs to so the single-project precondition can be checked.
type SelectedTask struct {
	TaskID      int64
	ProjectID   int64
	ProjectName string
	Earnings    decimal.Decimal
}

// VoucherDraft is a validated voucher-creation request ready to submit
// upstream. The amount is the exact sum of the selected tasks' earnings;
// the gateway is the source of truth for the proposed amount, subject to
// upstream validation.
type VoucherDraft struct {
	DeveloperID   int64
	ProjectID     int64
	ProjectName   string
	VoucherAmount decimal.Decimal
	TaskIDs       []int64
}

// BuildVoucherDraft validates a task selection and produces the draft to
// submit. Hard preconditions, checked before any upstream call:
//   - at least one task is selected
//   - every selected task belongs to the same project
func BuildVoucherDraft(developerID int64, selection []SelectedTask) (*VoucherDraft, error) {
	if len(selection) == 0 {
		return nil, shared.NewDomainError("EMPTY_SELECTION", "Select at least one task to create a payment voucher")
	}

	projectID := selection[0].ProjectID
	for i := range selection {
		if selection[i].ProjectID != projectID {
			return nil, shared.NewDomainError("MULTI_PROJECT_SELECTION", "Select tasks from only one project at a time for a payment voucher")
		}
	}

	amount := decimal.Zero
	taskIDs := make([]int64, 0, len(selection))
	for i := range selection {
		amount = amount.Add(selection[i].Earnings)
		taskIDs = append(taskIDs, selection[i].TaskID)
	}

	return &VoucherDraft{
		DeveloperID:   developerID,
		ProjectID:     projectID,
		ProjectName:   selection[0].ProjectName,
		VoucherAmount: amount,
		TaskIDs:       taskIDs,
	}, nil
}
