package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/billing"
)

// MockPaymentsFetcher is a mock implementation of PaymentsFetcher
type MockPaymentsFetcher struct {
	mock.Mock
}

func (m *MockPaymentsFetcher) Vouchers(ctx context.Context, token string, projectID *int64) ([]billing.Voucher, error) {
	args := m.Called(ctx, token, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Voucher), args.Error(1)
}

func (m *MockPaymentsFetcher) DeveloperPayments(ctx context.Context, token string, projectID *int64) ([]billing.DeveloperPayment, error) {
	args := m.Called(ctx, token, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.DeveloperPayment), args.Error(1)
}

func TestPaymentsOverview(t *testing.T) {
	ctx := context.Background()
	date := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return parsed
	}

	vouchers := []billing.Voucher{
		{ID: 1, DeveloperID: 7, ProjectID: 4, VoucherAmount: dec("500"), TotalPaid: dec("500"), Status: billing.VoucherStatusPaid, VoucherDate: date("2024-01-05")},
		{ID: 2, DeveloperID: 7, ProjectID: 4, VoucherAmount: dec("300"), TotalPaid: dec("100"), Status: billing.VoucherStatusPartial, VoucherDate: date("2024-02-15")},
		{ID: 3, DeveloperID: 8, ProjectID: 5, VoucherAmount: dec("200"), TotalPaid: dec("0"), Status: billing.VoucherStatusPending, VoucherDate: date("2024-02-10")},
	}
	payments := []billing.DeveloperPayment{
		{ID: 21, VoucherID: 1, DeveloperID: 7, PaymentAmount: dec("500"), PaymentDate: date("2024-01-08")},
		{ID: 22, VoucherID: 2, DeveloperID: 7, PaymentAmount: dec("100"), PaymentDate: date("2024-02-18")},
	}

	t.Run("rollups and recent lists", func(t *testing.T) {
		fetcher := new(MockPaymentsFetcher)
		fetcher.On("Vouchers", ctx, "tok", (*int64)(nil)).Return(vouchers, nil)
		fetcher.On("DeveloperPayments", ctx, "tok", (*int64)(nil)).Return(payments, nil)

		svc := NewPaymentsService(fetcher, zap.NewNop())
		resp, err := svc.Overview(ctx, "tok", nil)
		require.NoError(t, err)

		assert.Equal(t, 3, resp.Vouchers.Total)
		assert.Equal(t, 1, resp.Vouchers.Pending)
		assert.Equal(t, 1, resp.Vouchers.Partial)
		assert.Equal(t, 1, resp.Vouchers.Paid)
		assert.True(t, resp.Vouchers.TotalAmount.Equal(dec("1000")))
		assert.True(t, resp.Vouchers.PaidAmount.Equal(dec("600")))
		assert.True(t, resp.Vouchers.PendingAmount.Equal(dec("400")))

		assert.Equal(t, 2, resp.Payments.Total)
		assert.True(t, resp.Payments.TotalAmount.Equal(dec("600")))

		// recent lists are date descending
		require.Len(t, resp.RecentVouchers, 3)
		assert.Equal(t, int64(2), resp.RecentVouchers[0].ID)
		assert.Equal(t, int64(3), resp.RecentVouchers[1].ID)
		assert.True(t, resp.RecentVouchers[0].PendingAmount.Equal(dec("200")))

		require.Len(t, resp.RecentPayments, 2)
		assert.Equal(t, int64(22), resp.RecentPayments[0].ID)

		fetcher.AssertExpectations(t)
	})

	t.Run("either fetch failing fails the view", func(t *testing.T) {
		fetcher := new(MockPaymentsFetcher)
		fetcher.On("Vouchers", ctx, "tok", (*int64)(nil)).Return(vouchers, nil)
		fetcher.On("DeveloperPayments", ctx, "tok", (*int64)(nil)).Return(nil, errors.New("upstream down"))

		svc := NewPaymentsService(fetcher, zap.NewNop())
		_, err := svc.Overview(ctx, "tok", nil)
		require.Error(t, err)
	})

	t.Run("project filter is forwarded to both fetches", func(t *testing.T) {
		projectID := int64(5)
		fetcher := new(MockPaymentsFetcher)
		fetcher.On("Vouchers", ctx, "tok", &projectID).Return([]billing.Voucher{}, nil)
		fetcher.On("DeveloperPayments", ctx, "tok", &projectID).Return([]billing.DeveloperPayment{}, nil)

		svc := NewPaymentsService(fetcher, zap.NewNop())
		resp, err := svc.Overview(ctx, "tok", &projectID)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Vouchers.Total)
		assert.Equal(t, 0, resp.Payments.Total)
		fetcher.AssertExpectations(t)
	})
}
