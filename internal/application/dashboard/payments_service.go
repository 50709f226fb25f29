package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/billing"
)

// PaymentsService assembles the lead/admin payments view: voucher and
// developer-payment rollups with their recent lists.
type PaymentsService struct {
	fetcher PaymentsFetcher
	logger  *zap.Logger
}

// NewPaymentsService creates a new PaymentsService
func NewPaymentsService(fetcher PaymentsFetcher, logger *zap.Logger) *PaymentsService {
	return &PaymentsService{fetcher: fetcher, logger: logger}
}

// ===================== Response DTOs =====================

// VoucherStatsResponse is the voucher rollup block. Buckets count the
// stored voucher status as delivered upstream.
type VoucherStatsResponse struct {
	Total         int             `json:"total"`
	Pending       int             `json:"pending"`
	Partial       int             `json:"partial"`
	Paid          int             `json:"paid"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// VoucherTaskResponse is one task line item on a voucher
type VoucherTaskResponse struct {
	TaskID    int64           `json:"task_id"`
	TaskTitle string          `json:"task_title"`
	Amount    decimal.Decimal `json:"amount"`
}

// VoucherResponse is one voucher row
type VoucherResponse struct {
	ID            int64                 `json:"id"`
	DeveloperID   int64                 `json:"developer_id"`
	DeveloperName string                `json:"developer_name,omitempty"`
	ProjectID     int64                 `json:"project_id"`
	ProjectName   string                `json:"project_name,omitempty"`
	VoucherAmount decimal.Decimal       `json:"voucher_amount"`
	TotalPaid     decimal.Decimal       `json:"total_paid"`
	PendingAmount decimal.Decimal       `json:"pending_amount"`
	Status        string                `json:"status"`
	VoucherDate   time.Time             `json:"voucher_date"`
	Notes         string                `json:"notes,omitempty"`
	Tasks         []VoucherTaskResponse `json:"tasks,omitempty"`
}

// DeveloperPaymentResponse is one developer payment row
type DeveloperPaymentResponse struct {
	ID            int64           `json:"id"`
	VoucherID     int64           `json:"voucher_id"`
	DeveloperID   int64           `json:"developer_id"`
	ProjectID     int64           `json:"project_id"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Notes         string          `json:"notes,omitempty"`
}

// PaymentsOverviewResponse is the full payments view payload
type PaymentsOverviewResponse struct {
	Vouchers       VoucherStatsResponse       `json:"vouchers"`
	Payments       PaymentStatsResponse       `json:"payments"`
	RecentVouchers []VoucherResponse          `json:"recent_vouchers"`
	RecentPayments []DeveloperPaymentResponse `json:"recent_payments"`
}

// ===================== Operations =====================

// Overview fetches vouchers and developer payments concurrently and
// folds them into the payments view. Both fetches must succeed: unlike
// the developer dashboard, the two blocks of this view are read together
// (pending amounts against payments made) and a half-empty view would
// misstate the books.
func (s *PaymentsService) Overview(ctx context.Context, token string, projectID *int64) (*PaymentsOverviewResponse, error) {
	var (
		wg sync.WaitGroup

		vouchers   []billing.Voucher
		voucherErr error

		payments   []billing.DeveloperPayment
		paymentErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		vouchers, voucherErr = s.fetcher.Vouchers(ctx, token, projectID)
	}()
	go func() {
		defer wg.Done()
		payments, paymentErr = s.fetcher.DeveloperPayments(ctx, token, projectID)
	}()
	wg.Wait()

	if voucherErr != nil {
		return nil, voucherErr
	}
	if paymentErr != nil {
		return nil, paymentErr
	}

	voucherStats := billing.SummarizeVouchers(vouchers)
	paymentStats := billing.SummarizeDeveloperPayments(payments)

	return &PaymentsOverviewResponse{
		Vouchers: VoucherStatsResponse{
			Total:         voucherStats.Total,
			Pending:       voucherStats.Pending,
			Partial:       voucherStats.Partial,
			Paid:          voucherStats.Paid,
			TotalAmount:   voucherStats.TotalAmount,
			PaidAmount:    voucherStats.PaidAmount,
			PendingAmount: voucherStats.PendingAmount,
		},
		Payments: PaymentStatsResponse{
			Total:       paymentStats.Total,
			TotalAmount: paymentStats.TotalAmount,
		},
		RecentVouchers: toVouchers(billing.RecentVoucherList(vouchers)),
		RecentPayments: toDeveloperPayments(billing.RecentDeveloperPayments(payments)),
	}, nil
}

func toVouchers(vouchers []billing.Voucher) []VoucherResponse {
	out := make([]VoucherResponse, 0, len(vouchers))
	for i := range vouchers {
		v := &vouchers[i]
		tasks := make([]VoucherTaskResponse, 0, len(v.Tasks))
		for _, task := range v.Tasks {
			tasks = append(tasks, VoucherTaskResponse{
				TaskID:    task.TaskID,
				TaskTitle: task.TaskTitle,
				Amount:    task.Amount,
			})
		}
		out = append(out, VoucherResponse{
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
		})
	}
	return out
}

func toDeveloperPayments(payments []billing.DeveloperPayment) []DeveloperPaymentResponse {
	out := make([]DeveloperPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, DeveloperPaymentResponse{
			ID:            p.ID,
			VoucherID:     p.VoucherID,
			DeveloperID:   p.DeveloperID,
			ProjectID:     p.ProjectID,
			PaymentAmount: p.PaymentAmount,
			PaymentDate:   p.PaymentDate,
			Notes:         p.Notes,
		})
	}
	return out
}
