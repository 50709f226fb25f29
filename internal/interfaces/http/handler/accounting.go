package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workhub/gateway/internal/application/accounting"
	"github.com/workhub/gateway/internal/infrastructure/cache"
	"github.com/workhub/gateway/internal/interfaces/http/middleware"
)

// AccountingHandler serves the ledger view
type AccountingHandler struct {
	BaseHandler
	service  *accounting.Service
	cache    cache.SummaryCache
	cacheTTL time.Duration
}

// NewAccountingHandler creates a new AccountingHandler
func NewAccountingHandler(service *accounting.Service, store cache.SummaryCache, cacheTTL time.Duration) *AccountingHandler {
	return &AccountingHandler{service: service, cache: store, cacheTTL: cacheTTL}
}

// RegisterRoutes registers accounting routes
func (h *AccountingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/accounting")
	{
		group.GET("/ledger", h.GetLedger)
	}
}

// GetLedger returns the ledger entries with their reconciliation and
// the upstream account summary, optionally filtered by project_id
func (h *AccountingHandler) GetLedger(c *gin.Context) {
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

	key := viewKey("accounting:ledger", principal.Subject, projectID)
	respondCached(c, h.cache, key, h.cacheTTL, func() (any, error) {
		return h.service.Ledger(c.Request.Context(), principal.RawToken, projectID)
	})
}
