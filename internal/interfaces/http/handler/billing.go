package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/application/vouchers"
	"github.com/workhub/gateway/internal/infrastructure/cache"
	"github.com/workhub/gateway/internal/infrastructure/logger"
	"github.com/workhub/gateway/internal/interfaces/http/middleware"
)

// BillingHandler serves the voucher creation workflow
type BillingHandler struct {
	BaseHandler
	service  *vouchers.Service
	cache    cache.SummaryCache
	cacheTTL time.Duration
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(service *vouchers.Service, store cache.SummaryCache, cacheTTL time.Duration) *BillingHandler {
	return &BillingHandler{service: service, cache: store, cacheTTL: cacheTTL}
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/billing")
	{
		group.GET("/work-summary", h.GetWorkSummary)
		group.POST("/vouchers", h.CreateVoucher)
	}
}

// GetWorkSummary returns the unpaid-work breakdown that feeds task
// selection, optionally filtered by project_id
func (h *BillingHandler) GetWorkSummary(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := parseProjectID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	key := viewKey("billing:work-summary", principal.Subject, projectID)
	respondCached(c, h.cache, key, h.cacheTTL, func() (any, error) {
		return h.service.WorkSummary(c.Request.Context(), principal.RawToken, projectID)
	})
}

// CreateVoucher validates a task selection and submits the voucher
// upstream. Stale cached views for this caller are dropped afterwards
// so the new voucher shows up on the next read.
func (h *BillingHandler) CreateVoucher(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req vouchers.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), principal.RawToken, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	keys := []string{
		viewKey("dashboard:payments", principal.Subject, nil),
		viewKey("dashboard:payments", principal.Subject, &created.ProjectID),
		viewKey("billing:work-summary", principal.Subject, nil),
		viewKey("billing:work-summary", principal.Subject, &created.ProjectID),
	}
	if err := h.cache.Invalidate(c.Request.Context(), keys...); err != nil {
		logger.GetGinLogger(c).Warn("summary cache invalidation failed", zap.Error(err))
	}

	h.Created(c, created)
}
