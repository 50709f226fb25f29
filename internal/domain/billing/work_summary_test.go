package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhub/gateway/internal/domain/shared"
)

func TestBuildVoucherDraft(t *testing.T) {
	t.Run("single-project selection produces exact sum", func(t *testing.T) {
		draft, err := BuildVoucherDraft(9, []SelectedTask{
			{TaskID: 1, ProjectID: 4, ProjectName: "Atlas", Earnings: d("120.50")},
			{TaskID: 2, ProjectID: 4, ProjectName: "Atlas", Earnings: d("79.50")},
			{TaskID: 3, ProjectID: 4, ProjectName: "Atlas", Earnings: d("300")},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(9), draft.DeveloperID)
		assert.Equal(t, int64(4), draft.ProjectID)
		assert.Equal(t, "Atlas", draft.ProjectName)
		assert.True(t, draft.VoucherAmount.Equal(d("500")))
		assert.Equal(t, []int64{1, 2, 3}, draft.TaskIDs)
	})

	t.Run("multi-project selection is rejected", func(t *testing.T) {
		_, err := BuildVoucherDraft(9, []SelectedTask{
			{TaskID: 1, ProjectID: 4, Earnings: d("100")},
			{TaskID: 2, ProjectID: 5, Earnings: d("50")},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MULTI_PROJECT_SELECTION", domainErr.Code)
	})

	t.Run("empty selection is rejected", func(t *testing.T) {
		_, err := BuildVoucherDraft(9, nil)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_SELECTION", domainErr.Code)
	})
}

func TestEligibleRows(t *testing.T) {
	rows := []WorkSummaryRow{
		{DeveloperID: 1, ProjectID: 1, PendingAmount: d("100")},
		{DeveloperID: 2, ProjectID: 1, PendingAmount: d("0")},
		{DeveloperID: 3, ProjectID: 2, PendingAmount: d("0.01")},
	}

	eligible := EligibleRows(rows)
	require.Len(t, eligible, 2)
	assert.Equal(t, int64(1), eligible[0].DeveloperID)
	assert.Equal(t, int64(3), eligible[1].DeveloperID)
}

func TestSummarizeWork(t *testing.T) {
	t.Run("developer pending on two projects counts once", func(t *testing.T) {
		rows := []WorkSummaryRow{
			{DeveloperID: 1, ProjectID: 1, TotalProductivityHours: d("10"), TotalEarnings: d("500"), PaidAmount: d("100"), PendingAmount: d("400")},
			{DeveloperID: 1, ProjectID: 2, TotalProductivityHours: d("4"), TotalEarnings: d("200"), PaidAmount: d("0"), PendingAmount: d("200")},
			{DeveloperID: 2, ProjectID: 1, TotalProductivityHours: d("8"), TotalEarnings: d("320"), PaidAmount: d("320"), PendingAmount: d("0")},
		}

		stats := SummarizeWork(rows)

		assert.True(t, stats.TotalHours.Equal(d("22")))
		assert.True(t, stats.TotalEarnings.Equal(d("1020")))
		assert.True(t, stats.TotalPaid.Equal(d("420")))
		assert.True(t, stats.TotalPending.Equal(d("600")))
		// developer 2 is fully paid and excluded from the count
		assert.Equal(t, 1, stats.EligibleDevelopers)
	})

	t.Run("empty input yields zeros", func(t *testing.T) {
		stats := SummarizeWork(nil)
		assert.Equal(t, 0, stats.EligibleDevelopers)
		assert.True(t, stats.TotalEarnings.IsZero())
	})
}

func TestSummarizeVouchers(t *testing.T) {
	vouchers := []Voucher{
		{ID: 1, VoucherAmount: d("100"), TotalPaid: d("0"), Status: VoucherStatusPending},
		{ID: 2, VoucherAmount: d("200"), TotalPaid: d("50"), Status: VoucherStatusPartial},
		{ID: 3, VoucherAmount: d("300"), TotalPaid: d("300"), Status: VoucherStatusPaid},
	}

	stats := SummarizeVouchers(vouchers)

	assert.Equal(t, 3, stats.Total)
	assert.True(t, stats.TotalAmount.Equal(d("600")))
	assert.True(t, stats.PaidAmount.Equal(d("350")))
	assert.True(t, stats.PendingAmount.Equal(d("250")))
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Partial)
	assert.Equal(t, 1, stats.Paid)
}

func TestSummarizeVouchersTrustsStoredStatus(t *testing.T) {
	// the stored status drives the buckets even when amounts disagree;
	// lead-side stats do not re-derive classification
	vouchers := []Voucher{
		{ID: 1, VoucherAmount: d("100"), TotalPaid: d("100"), Status: VoucherStatusPending},
	}
	stats := SummarizeVouchers(vouchers)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0, stats.Paid)
}

func TestRecentVoucherList(t *testing.T) {
	vouchers := []Voucher{
		{ID: 1, VoucherDate: day(t, "2024-01-01")},
		{ID: 2, VoucherDate: day(t, "2024-03-01")},
		{ID: 3, VoucherDate: day(t, "2024-02-01")},
	}
	recent := RecentVoucherList(vouchers)
	require.Len(t, recent, 3)
	assert.Equal(t, int64(2), recent[0].ID)
	assert.Equal(t, int64(3), recent[1].ID)
	assert.Equal(t, int64(1), recent[2].ID)
}

func TestSummarizeDeveloperPayments(t *testing.T) {
	stats := SummarizeDeveloperPayments([]DeveloperPayment{
		{ID: 1, PaymentAmount: d("150")},
		{ID: 2, PaymentAmount: d("75.25")},
	})
	assert.Equal(t, 2, stats.Total)
	assert.True(t, stats.TotalAmount.Equal(d("225.25")))

	empty := SummarizeDeveloperPayments(nil)
	assert.Equal(t, 0, empty.Total)
	assert.True(t, empty.TotalAmount.IsZero())
}
