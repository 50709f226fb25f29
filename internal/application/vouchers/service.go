package vouchers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/application/dashboard"
	"github.com/workhub/gateway/internal/domain/billing"
)

// Gateway is the upstream surface the voucher workflow needs
type Gateway interface {
	WorkSummary(ctx context.Context, token string, projectID *int64) ([]billing.WorkSummaryRow, error)
	CreateVoucher(ctx context.Context, token string, draft *billing.VoucherDraft, voucherDate time.Time, notes string) (*billing.Voucher, error)
}

// Service drives the voucher creation workflow: the work summary that
// feeds task selection, and the validated creation call itself.
type Service struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewService creates a new voucher Service
func NewService(gateway Gateway, logger *zap.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// ===================== Request/Response DTOs =====================

// WorkTaskResponse is one unpaid-work task line
type WorkTaskResponse struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	ProductivityHours decimal.Decimal `json:"productivity_hours"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	Earnings          decimal.Decimal `json:"earnings"`
	IsPaid            bool            `json:"is_paid"`
}

// WorkSummaryRowResponse is one developer-project work breakdown row
type WorkSummaryRowResponse struct {
	DeveloperID            int64              `json:"developer_id"`
	DeveloperName          string             `json:"developer_name"`
	ProjectID              int64              `json:"project_id"`
	ProjectName            string             `json:"project_name"`
	TotalProductivityHours decimal.Decimal    `json:"total_productivity_hours"`
	HourlyRate             decimal.Decimal    `json:"hourly_rate"`
	TotalEarnings          decimal.Decimal    `json:"total_earnings"`
	PaidAmount             decimal.Decimal    `json:"paid_amount"`
	PendingAmount          decimal.Decimal    `json:"pending_amount"`
	Tasks                  []WorkTaskResponse `json:"tasks"`
}

// WorkSummaryStatsResponse is the rollup over eligible rows
type WorkSummaryStatsResponse struct {
	TotalHours         decimal.Decimal `json:"total_hours"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	TotalPending       decimal.Decimal `json:"total_pending"`
	EligibleDevelopers int             `json:"eligible_developers"`
}

// WorkSummaryResponse is the full work summary payload. Rows carry only
// developers with pending earnings; fully paid rows are filtered out.
type WorkSummaryResponse struct {
	Rows  []WorkSummaryRowResponse `json:"rows"`
	Stats WorkSummaryStatsResponse `json:"stats"`
}

// SelectedTaskRequest is one task chosen for voucher creation. Earnings
// bind as decimal so the proposed amount is an exact sum; floats appear
// only at the upstream wire boundary.
type SelectedTaskRequest struct {
	TaskID      int64           `json:"task_id" binding:"required"`
	ProjectID   int64           `json:"project_id" binding:"required"`
	ProjectName string          `json:"project_name"`
	Earnings    decimal.Decimal `json:"earnings"`
}

// CreateVoucherRequest is the voucher creation payload. The gateway
// derives the amount from the selected tasks; callers never send one.
type CreateVoucherRequest struct {
	DeveloperID int64                 `json:"developer_id" binding:"required"`
	VoucherDate time.Time             `json:"voucher_date"`
	Notes       string                `json:"notes"`
	Tasks       []SelectedTaskRequest `json:"tasks" binding:"required"`
}

// ===================== Operations =====================

// WorkSummary fetches the unpaid-work breakdown and folds it into the
// eligible rows plus their stats.
func (s *Service) WorkSummary(ctx context.Context, token string, projectID *int64) (*WorkSummaryResponse, error) {
	rows, err := s.gateway.WorkSummary(ctx, token, projectID)
	if err != nil {
		return nil, err
	}

	eligible := billing.EligibleRows(rows)
	stats := billing.SummarizeWork(rows)

	out := make([]WorkSummaryRowResponse, 0, len(eligible))
	for i := range eligible {
		row := &eligible[i]
		tasks := make([]WorkTaskResponse, 0, len(row.Tasks))
		for _, task := range row.Tasks {
			tasks = append(tasks, WorkTaskResponse{
				ID:                task.ID,
				Title:             task.Title,
				ProductivityHours: task.ProductivityHours,
				HourlyRate:        task.HourlyRate,
				Earnings:          task.Earnings,
				IsPaid:            task.IsPaid,
			})
		}
		out = append(out, WorkSummaryRowResponse{
			DeveloperID:            row.DeveloperID,
			DeveloperName:          row.DeveloperName,
			ProjectID:              row.ProjectID,
			ProjectName:            row.ProjectName,
			TotalProductivityHours: row.TotalProductivityHours,
			HourlyRate:             row.HourlyRate,
			TotalEarnings:          row.TotalEarnings,
			PaidAmount:             row.PaidAmount,
			PendingAmount:          row.PendingAmount,
			Tasks:                  tasks,
		})
	}

	return &WorkSummaryResponse{
		Rows: out,
		Stats: WorkSummaryStatsResponse{
			TotalHours:         stats.TotalHours,
			TotalEarnings:      stats.TotalEarnings,
			TotalPaid:          stats.TotalPaid,
			TotalPending:       stats.TotalPending,
			EligibleDevelopers: stats.EligibleDevelopers,
		},
	}, nil
}

// Create validates the task selection and submits the voucher upstream.
// Selection violations (empty, or tasks spanning projects) fail here,
// before any upstream call is made. The proposed amount is the exact sum
// of the selected tasks' earnings; the upstream revalidates it against
// its own task records and remains the final authority.
func (s *Service) Create(ctx context.Context, token string, req *CreateVoucherRequest) (*dashboard.VoucherResponse, error) {
	selection := make([]billing.SelectedTask, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		selection = append(selection, billing.SelectedTask{
			TaskID:      task.TaskID,
			ProjectID:   task.ProjectID,
			ProjectName: task.ProjectName,
			Earnings:    task.Earnings,
		})
	}

	draft, err := billing.BuildVoucherDraft(req.DeveloperID, selection)
	if err != nil {
		return nil, err
	}

	voucherDate := req.VoucherDate
	if voucherDate.IsZero() {
		voucherDate = time.Now().UTC()
	}

	created, err := s.gateway.CreateVoucher(ctx, token, draft, voucherDate, req.Notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment voucher created",
		zap.Int64("voucher_id", created.ID),
		zap.Int64("developer_id", created.DeveloperID),
		zap.Int64("project_id", created.ProjectID),
		zap.String("amount", created.VoucherAmount.String()))

	resp := toVoucherResponse(created)
	return resp, nil
}

func toVoucherResponse(v *billing.Voucher) *dashboard.VoucherResponse {
	tasks := make([]dashboard.VoucherTaskResponse, 0, len(v.Tasks))
	for _, task := range v.Tasks {
		tasks = append(tasks, dashboard.VoucherTaskResponse{
			TaskID:    task.TaskID,
			TaskTitle: task.TaskTitle,
			Amount:    task.Amount,
		})
	}
	return &dashboard.VoucherResponse{
		ID:            v.ID,
		DeveloperID:   v.DeveloperID,
		DeveloperName: v.DeveloperName,
		ProjectID:     v.ProjectID,
		ProjectName:   v.ProjectName,
		VoucherAmount: v.VoucherAmount,
		TotalPaid:     v.TotalPaid,
		PendingAmount: v.PendingAmount(),
		Status:        string(v.Status),
		VoucherDate:   v.VoucherDate,
		Notes:         v.Notes,
		Tasks:         tasks,
	}
}
