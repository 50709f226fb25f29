package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/billing"
	"github.com/workhub/gateway/internal/domain/tracking"
)

// Section names reported when a dashboard section could not be loaded
const (
	SectionTasks      = "tasks"
	SectionTimesheets = "timesheets"
	SectionEarnings   = "earnings"
)

// DeveloperService assembles the developer dashboard from the caller's
// tasks, timesheets, and per-voucher earnings.
type DeveloperService struct {
	fetcher DeveloperFetcher
	logger  *zap.Logger
}

// NewDeveloperService creates a new DeveloperService
func NewDeveloperService(fetcher DeveloperFetcher, logger *zap.Logger) *DeveloperService {
	return &DeveloperService{fetcher: fetcher, logger: logger}
}

// ===================== Response DTOs =====================

// TaskTallyResponse is the per-status task count block
type TaskTallyResponse struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Testing    int `json:"testing"`
	Completed  int `json:"completed"`
}

// TimesheetTallyResponse is the per-status timesheet count block
type TimesheetTallyResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// RecentTaskResponse is one row of the recent open tasks widget
type RecentTaskResponse struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	ActivityAt  time.Time `json:"activity_at"`
}

// PaymentHistoryResponse is one payment event on a voucher
type PaymentHistoryResponse struct {
	ID            int64           `json:"id"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Notes         string          `json:"notes,omitempty"`
}

// MergedVoucherResponse is one logical voucher after duplicate earning
// records have been folded together
type MergedVoucherResponse struct {
	VoucherID     int64                    `json:"voucher_id"`
	VoucherDate   time.Time                `json:"voucher_date"`
	ProjectName   string                   `json:"project_name"`
	TotalEarnings decimal.Decimal          `json:"total_earnings"`
	PaidAmount    decimal.Decimal          `json:"paid_amount"`
	PendingAmount decimal.Decimal          `json:"pending_amount"`
	Status        string                   `json:"status"`
	Payments      []PaymentHistoryResponse `json:"payments"`
}

// RecentPaymentResponse is one row of the recent payments widget
type RecentPaymentResponse struct {
	ID            int64           `json:"id"`
	VoucherID     int64           `json:"voucher_id"`
	ProjectName   string          `json:"project_name"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Notes         string          `json:"notes,omitempty"`
}

// EarningsResponse is the merged earnings block of the dashboard
type EarningsResponse struct {
	TotalEarnings  decimal.Decimal         `json:"total_earnings"`
	PaidAmount     decimal.Decimal         `json:"paid_amount"`
	PendingAmount  decimal.Decimal         `json:"pending_amount"`
	Vouchers       []MergedVoucherResponse `json:"vouchers"`
	RecentVouchers []MergedVoucherResponse `json:"recent_vouchers"`
	RecentPayments []RecentPaymentResponse `json:"recent_payments"`
}

// DeveloperDashboardResponse is the full developer dashboard payload.
// Sections that could not be loaded are nil and listed under degraded;
// one failing upstream call never blanks the whole dashboard.
type DeveloperDashboardResponse struct {
	Tasks       *TaskTallyResponse      `json:"tasks,omitempty"`
	Timesheets  *TimesheetTallyResponse `json:"timesheets,omitempty"`
	RecentTasks []RecentTaskResponse    `json:"recent_tasks,omitempty"`
	Earnings    *EarningsResponse       `json:"earnings,omitempty"`
	Degraded    []string                `json:"degraded,omitempty"`
}

// ===================== Operations =====================

// Dashboard loads the three dashboard sections concurrently and folds
// each into its summary. A failed section is logged, skipped, and named
// in the degraded list; the remaining sections are still served.
func (s *DeveloperService) Dashboard(ctx context.Context, token string) (*DeveloperDashboardResponse, error) {
	var (
		wg sync.WaitGroup

		taskGroups [][]tracking.Task
		taskErr    error

		timesheets   []tracking.Timesheet
		timesheetErr error

		earnings   []billing.EarningRecord
		earningErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		taskGroups, taskErr = s.fetcher.MyTaskGroups(ctx, token)
	}()
	go func() {
		defer wg.Done()
		timesheets, timesheetErr = s.fetcher.MyTimesheets(ctx, token)
	}()
	go func() {
		defer wg.Done()
		earnings, earningErr = s.fetcher.MyEarnings(ctx, token)
	}()
	wg.Wait()

	resp := &DeveloperDashboardResponse{}

	if taskErr != nil {
		s.logger.Warn("developer dashboard: tasks section unavailable", zap.Error(taskErr))
		resp.Degraded = append(resp.Degraded, SectionTasks)
	} else {
		flat := make([]tracking.Task, 0)
		for _, group := range taskGroups {
			flat = append(flat, group...)
		}
		tally := tracking.TallyTasks(flat)
		resp.Tasks = &TaskTallyResponse{
			Total:      tally.Total,
			Todo:       tally.Todo,
			InProgress: tally.InProgress,
			Testing:    tally.Testing,
			Completed:  tally.Completed,
		}
		resp.RecentTasks = toRecentTasks(tracking.RecentOpenTasks(taskGroups))
	}

	if timesheetErr != nil {
		s.logger.Warn("developer dashboard: timesheets section unavailable", zap.Error(timesheetErr))
		resp.Degraded = append(resp.Degraded, SectionTimesheets)
	} else {
		tally := tracking.TallyTimesheets(timesheets)
		resp.Timesheets = &TimesheetTallyResponse{
			Total:    tally.Total,
			Pending:  tally.Pending,
			Approved: tally.Approved,
			Rejected: tally.Rejected,
		}
	}

	if earningErr != nil {
		s.logger.Warn("developer dashboard: earnings section unavailable", zap.Error(earningErr))
		resp.Degraded = append(resp.Degraded, SectionEarnings)
	} else {
		resp.Earnings = buildEarnings(earnings)
	}

	return resp, nil
}

// Earnings serves the standalone earnings view: all merged vouchers plus
// the recent widgets, without the task sections.
func (s *DeveloperService) Earnings(ctx context.Context, token string) (*EarningsResponse, error) {
	records, err := s.fetcher.MyEarnings(ctx, token)
	if err != nil {
		return nil, err
	}
	return buildEarnings(records), nil
}

func buildEarnings(records []billing.EarningRecord) *EarningsResponse {
	merged := billing.MergeEarnings(records)
	totals := billing.SumEarnings(merged)

	return &EarningsResponse{
		TotalEarnings:  totals.TotalEarnings,
		PaidAmount:     totals.PaidAmount,
		PendingAmount:  totals.PendingAmount,
		Vouchers:       toMergedVouchers(merged),
		RecentVouchers: toMergedVouchers(billing.RecentVouchers(merged)),
		RecentPayments: toRecentPayments(billing.RecentPayments(merged)),
	}
}

func toRecentTasks(tasks []tracking.Task) []RecentTaskResponse {
	out := make([]RecentTaskResponse, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		out = append(out, RecentTaskResponse{
			ID:          t.ID,
			ProjectID:   t.ProjectID,
			ProjectName: t.ProjectName,
			Title:       t.Title,
			Status:      string(t.Status),
			ActivityAt:  t.ActivityTime(),
		})
	}
	return out
}

func toMergedVouchers(vouchers []billing.MergedVoucher) []MergedVoucherResponse {
	out := make([]MergedVoucherResponse, 0, len(vouchers))
	for i := range vouchers {
		v := &vouchers[i]
		payments := make([]PaymentHistoryResponse, 0, len(v.Payments))
		for _, p := range v.Payments {
			payments = append(payments, PaymentHistoryResponse{
				ID:            p.ID,
				PaymentAmount: p.PaymentAmount,
				PaymentDate:   p.PaymentDate,
				Notes:         p.Notes,
			})
		}
		out = append(out, MergedVoucherResponse{
			VoucherID:     v.VoucherID,
			VoucherDate:   v.VoucherDate,
			ProjectName:   v.ProjectName,
			TotalEarnings: v.TotalEarnings,
			PaidAmount:    v.PaidAmount,
			PendingAmount: v.PendingAmount,
			Status:        string(v.Status),
			Payments:      payments,
		})
	}
	return out
}

func toRecentPayments(payments []billing.VoucherPayment) []RecentPaymentResponse {
	out := make([]RecentPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, RecentPaymentResponse{
			ID:            p.ID,
			VoucherID:     p.VoucherID,
			ProjectName:   p.ProjectName,
			PaymentAmount: p.PaymentAmount,
			PaymentDate:   p.PaymentDate,
			Notes:         p.Notes,
		})
	}
	return out
}
