package vouchers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/billing"
	"github.com/workhub/gateway/internal/domain/shared"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) WorkSummary(ctx context.Context, token string, projectID *int64) ([]billing.WorkSummaryRow, error) {
	args := m.Called(ctx, token, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.WorkSummaryRow), args.Error(1)
}

func (m *MockGateway) CreateVoucher(ctx context.Context, token string, draft *billing.VoucherDraft, voucherDate time.Time, notes string) (*billing.Voucher, error) {
	args := m.Called(ctx, token, draft, voucherDate, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Voucher), args.Error(1)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestWorkSummary(t *testing.T) {
	ctx := context.Background()

	rows := []billing.WorkSummaryRow{
		{
			DeveloperID: 7, DeveloperName: "dev_anna", ProjectID: 4, ProjectName: "Atlas",
			TotalProductivityHours: dec("12"), HourlyRate: dec("50"),
			TotalEarnings: dec("600"), PaidAmount: dec("200"), PendingAmount: dec("400"),
			Tasks: []billing.WorkTask{
				{ID: 1, Title: "Export", ProductivityHours: dec("12"), HourlyRate: dec("50"), Earnings: dec("600")},
			},
		},
		{
			// fully paid, must be filtered from the rows but still counted
			// into the paid side of the stats
			DeveloperID: 8, DeveloperName: "dev_bo", ProjectID: 4, ProjectName: "Atlas",
			TotalProductivityHours: dec("4"), HourlyRate: dec("40"),
			TotalEarnings: dec("160"), PaidAmount: dec("160"), PendingAmount: dec("0"),
		},
	}

	t.Run("eligible rows with stats over all rows", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("WorkSummary", ctx, "tok", (*int64)(nil)).Return(rows, nil)

		svc := NewService(gateway, zap.NewNop())
		resp, err := svc.WorkSummary(ctx, "tok", nil)
		require.NoError(t, err)

		require.Len(t, resp.Rows, 1)
		assert.Equal(t, int64(7), resp.Rows[0].DeveloperID)
		require.Len(t, resp.Rows[0].Tasks, 1)

		assert.True(t, resp.Stats.TotalHours.Equal(dec("16")))
		assert.True(t, resp.Stats.TotalEarnings.Equal(dec("760")))
		assert.True(t, resp.Stats.TotalPaid.Equal(dec("360")))
		assert.True(t, resp.Stats.TotalPending.Equal(dec("400")))
		assert.Equal(t, 1, resp.Stats.EligibleDevelopers)

		gateway.AssertExpectations(t)
	})

	t.Run("fetch failure is returned", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("WorkSummary", ctx, "tok", (*int64)(nil)).Return(nil, errors.New("upstream down"))

		svc := NewService(gateway, zap.NewNop())
		_, err := svc.WorkSummary(ctx, "tok", nil)
		require.Error(t, err)
	})
}

func TestCreateVoucher(t *testing.T) {
	ctx := context.Background()

	t.Run("single project selection submits the exact sum", func(t *testing.T) {
		gateway := new(MockGateway)
		created := &billing.Voucher{
			ID: 31, DeveloperID: 7, ProjectID: 4, ProjectName: "Atlas",
			VoucherAmount: dec("500"), TotalPaid: dec("0"),
			Status: billing.VoucherStatusPending, VoucherDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		gateway.On("CreateVoucher", ctx, "tok", mock.MatchedBy(func(draft *billing.VoucherDraft) bool {
			return draft.DeveloperID == 7 &&
				draft.ProjectID == 4 &&
				draft.VoucherAmount.Equal(dec("500")) &&
				len(draft.TaskIDs) == 2
		}), mock.AnythingOfType("time.Time"), "march work").Return(created, nil)

		svc := NewService(gateway, zap.NewNop())
		resp, err := svc.Create(ctx, "tok", &CreateVoucherRequest{
			DeveloperID: 7,
			Notes:       "march work",
			Tasks: []SelectedTaskRequest{
				{TaskID: 1, ProjectID: 4, ProjectName: "Atlas", Earnings: dec("300")},
				{TaskID: 2, ProjectID: 4, ProjectName: "Atlas", Earnings: dec("200")},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(31), resp.ID)
		assert.True(t, resp.VoucherAmount.Equal(dec("500")))
		assert.True(t, resp.PendingAmount.Equal(dec("500")))
		gateway.AssertExpectations(t)
	})

	t.Run("fractional earnings sum exactly", func(t *testing.T) {
		gateway := new(MockGateway)
		created := &billing.Voucher{
			ID: 32, DeveloperID: 7, ProjectID: 4,
			VoucherAmount: dec("0.3"), TotalPaid: dec("0"),
			Status: billing.VoucherStatusPending, VoucherDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		gateway.On("CreateVoucher", ctx, "tok", mock.MatchedBy(func(draft *billing.VoucherDraft) bool {
			// 0.1 + 0.2 must be exactly 0.3, no float drift
			return draft.VoucherAmount.Equal(dec("0.3"))
		}), mock.AnythingOfType("time.Time"), "").Return(created, nil)

		svc := NewService(gateway, zap.NewNop())
		_, err := svc.Create(ctx, "tok", &CreateVoucherRequest{
			DeveloperID: 7,
			Tasks: []SelectedTaskRequest{
				{TaskID: 1, ProjectID: 4, Earnings: dec("0.1")},
				{TaskID: 2, ProjectID: 4, Earnings: dec("0.2")},
			},
		})
		require.NoError(t, err)
		gateway.AssertExpectations(t)
	})

	t.Run("selection spanning projects is rejected before any upstream call", func(t *testing.T) {
		gateway := new(MockGateway)

		svc := NewService(gateway, zap.NewNop())
		_, err := svc.Create(ctx, "tok", &CreateVoucherRequest{
			DeveloperID: 7,
			Tasks: []SelectedTaskRequest{
				{TaskID: 1, ProjectID: 4, Earnings: dec("300")},
				{TaskID: 2, ProjectID: 5, Earnings: dec("200")},
			},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "MULTI_PROJECT_SELECTION", domainErr.Code)
		gateway.AssertNotCalled(t, "CreateVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty selection is rejected before any upstream call", func(t *testing.T) {
		gateway := new(MockGateway)

		svc := NewService(gateway, zap.NewNop())
		_, err := svc.Create(ctx, "tok", &CreateVoucherRequest{DeveloperID: 7})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMPTY_SELECTION", domainErr.Code)
		gateway.AssertNotCalled(t, "CreateVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero voucher date defaults to now", func(t *testing.T) {
		gateway := new(MockGateway)
		created := &billing.Voucher{
			ID: 32, DeveloperID: 7, ProjectID: 4,
			VoucherAmount: dec("300"), TotalPaid: dec("0"),
			Status: billing.VoucherStatusPending, VoucherDate: time.Now().UTC(),
		}
		before := time.Now().UTC()
		gateway.On("CreateVoucher", ctx, "tok", mock.Anything, mock.MatchedBy(func(date time.Time) bool {
			return !date.Before(before)
		}), "").Return(created, nil)

		svc := NewService(gateway, zap.NewNop())
		_, err := svc.Create(ctx, "tok", &CreateVoucherRequest{
			DeveloperID: 7,
			Tasks:       []SelectedTaskRequest{{TaskID: 1, ProjectID: 4, Earnings: dec("300")}},
		})
		require.NoError(t, err)
		gateway.AssertExpectations(t)
	})

	t.Run("upstream rejection is surfaced", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("CreateVoucher", ctx, "tok", mock.Anything, mock.AnythingOfType("time.Time"), "").
			Return(nil, errors.New("tasks already paid"))

		svc := NewService(gateway, zap.NewNop())
		_, err := svc.Create(ctx, "tok", &CreateVoucherRequest{
			DeveloperID: 7,
			Tasks:       []SelectedTaskRequest{{TaskID: 1, ProjectID: 4, Earnings: dec("300")}},
		})
		require.Error(t, err)
	})
}
