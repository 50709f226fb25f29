package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workhub/gateway/internal/application/dashboard"
	"github.com/workhub/gateway/internal/infrastructure/cache"
	"github.com/workhub/gateway/internal/interfaces/http/middleware"
)

// DashboardHandler serves the aggregated dashboard views
type DashboardHandler struct {
	BaseHandler
	developer *dashboard.DeveloperService
	overview  *dashboard.OverviewService
	payments  *dashboard.PaymentsService
	cache     cache.SummaryCache
	cacheTTL  time.Duration
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	developer *dashboard.DeveloperService,
	overview *dashboard.OverviewService,
	payments *dashboard.PaymentsService,
	store cache.SummaryCache,
	cacheTTL time.Duration,
) *DashboardHandler {
	return &DashboardHandler{
		developer: developer,
		overview:  overview,
		payments:  payments,
		cache:     store,
		cacheTTL:  cacheTTL,
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/dashboard")
	{
		group.GET("/developer", h.GetDeveloperDashboard)
		group.GET("/overview", h.GetOverview)
		group.GET("/payments", h.GetPayments)
	}
}

// GetDeveloperDashboard returns the calling developer's dashboard:
// task and timesheet tallies, recent open tasks, and merged earnings
func (h *DashboardHandler) GetDeveloperDashboard(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	key := viewKey("dashboard:developer", principal.Subject, nil)
	respondCached(c, h.cache, key, h.cacheTTL, func() (any, error) {
		return h.developer.Dashboard(c.Request.Context(), principal.RawToken)
	})
}

// GetOverview returns the invoice overview with per-invoice payment
// detail, optionally filtered by project_id
func (h *DashboardHandler) GetOverview(c *gin.Context) {
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

	key := viewKey("dashboard:overview", principal.Subject, projectID)
	respondCached(c, h.cache, key, h.cacheTTL, func() (any, error) {
		return h.overview.Overview(c.Request.Context(), principal.RawToken, projectID)
	})
}

// GetPayments returns the voucher and developer-payment rollups,
// optionally filtered by project_id
func (h *DashboardHandler) GetPayments(c *gin.Context) {
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

	key := viewKey("dashboard:payments", principal.Subject, projectID)
	respondCached(c, h.cache, key, h.cacheTTL, func() (any, error) {
		return h.payments.Overview(c.Request.Context(), principal.RawToken, projectID)
	})
}
