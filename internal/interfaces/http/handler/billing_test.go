package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/application/vouchers"
	"github.com/workhub/gateway/internal/domain/billing"
	"github.com/workhub/gateway/internal/infrastructure/cache"
)

// stubGateway serves one canned work summary and echoes created drafts
type stubGateway struct {
	created *billing.VoucherDraft
}

func (s *stubGateway) WorkSummary(ctx context.Context, token string, projectID *int64) ([]billing.WorkSummaryRow, error) {
	return []billing.WorkSummaryRow{
		{
			DeveloperID: 7, DeveloperName: "dev_anna", ProjectID: 4, ProjectName: "Atlas",
			TotalProductivityHours: decimal.NewFromInt(10),
			HourlyRate:             decimal.NewFromInt(50),
			TotalEarnings:          decimal.NewFromInt(500),
			PendingAmount:          decimal.NewFromInt(500),
		},
	}, nil
}

func (s *stubGateway) CreateVoucher(ctx context.Context, token string, draft *billing.VoucherDraft, voucherDate time.Time, notes string) (*billing.Voucher, error) {
	s.created = draft
	return &billing.Voucher{
		ID:            99,
		DeveloperID:   draft.DeveloperID,
		ProjectID:     draft.ProjectID,
		VoucherAmount: draft.VoucherAmount,
		TotalPaid:     decimal.Zero,
		Status:        billing.VoucherStatusPending,
		VoucherDate:   voucherDate,
	}, nil
}

func newBillingRouter(gateway *stubGateway, store cache.SummaryCache) *gin.Engine {
	service := vouchers.NewService(gateway, zap.NewNop())
	h := NewBillingHandler(service, store, time.Minute)

	router := gin.New()
	router.Use(asPrincipal("lead_omar"))
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	return router
}

func TestGetWorkSummary(t *testing.T) {
	router := newBillingRouter(&stubGateway{}, cache.NoopSummaryCache{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/billing/work-summary", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dev_anna")
	assert.Contains(t, w.Body.String(), `"eligible_developers":1`)
}

func TestCreateVoucherEndpoint(t *testing.T) {
	t.Run("creates a voucher and reports 201", func(t *testing.T) {
		gateway := &stubGateway{}
		router := newBillingRouter(gateway, cache.NoopSummaryCache{})

		body := `{
			"developer_id": 7,
			"notes": "march work",
			"tasks": [
				{"task_id": 1, "project_id": 4, "project_name": "Atlas", "earnings": 300},
				{"task_id": 2, "project_id": 4, "project_name": "Atlas", "earnings": 200}
			]
		}`
		req := httptest.NewRequest("POST", "/api/v1/billing/vouchers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, gateway.created)
		assert.True(t, gateway.created.VoucherAmount.Equal(decimal.NewFromInt(500)))
		assert.Contains(t, w.Body.String(), `"id":99`)
	})

	t.Run("missing fields fail binding with 400", func(t *testing.T) {
		gateway := &stubGateway{}
		router := newBillingRouter(gateway, cache.NoopSummaryCache{})

		req := httptest.NewRequest("POST", "/api/v1/billing/vouchers", strings.NewReader(`{"notes":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, gateway.created)
	})

	t.Run("multi-project selection returns 422 without an upstream call", func(t *testing.T) {
		gateway := &stubGateway{}
		router := newBillingRouter(gateway, cache.NoopSummaryCache{})

		body := `{
			"developer_id": 7,
			"tasks": [
				{"task_id": 1, "project_id": 4, "earnings": 300},
				{"task_id": 2, "project_id": 5, "earnings": 200}
			]
		}`
		req := httptest.NewRequest("POST", "/api/v1/billing/vouchers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "MULTI_PROJECT_SELECTION")
		assert.Nil(t, gateway.created)
	})

	t.Run("creation drops this caller's cached views", func(t *testing.T) {
		gateway := &stubGateway{}
		store := cache.NewInMemorySummaryCache()
		defer store.Close()
		router := newBillingRouter(gateway, store)

		// warm the work summary cache
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/billing/work-summary", nil))
		require.Equal(t, http.StatusOK, w.Code)
		_, hit, err := store.Get(context.Background(), "billing:work-summary:lead_omar")
		require.NoError(t, err)
		require.True(t, hit)

		body := `{
			"developer_id": 7,
			"tasks": [{"task_id": 1, "project_id": 4, "earnings": 500}]
		}`
		req := httptest.NewRequest("POST", "/api/v1/billing/vouchers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		_, hit, err = store.Get(context.Background(), "billing:work-summary:lead_omar")
		require.NoError(t, err)
		assert.False(t, hit)
	})
}
