package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/infrastructure/cache"
	"github.com/workhub/gateway/internal/infrastructure/logger"
	"github.com/workhub/gateway/internal/interfaces/http/dto"
)

// parseProjectID reads the optional project_id query parameter.
// Returns nil when the parameter is absent.
func parseProjectID(c *gin.Context) (*int64, error) {
	raw := c.Query("project_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("project_id must be a positive integer")
	}
	return &id, nil
}

// viewKey builds a summary cache key for a view scoped to one caller
// and an optional project filter
func viewKey(view, subject string, projectID *int64) string {
	if projectID != nil {
		return fmt.Sprintf("%s:%s:p%d", view, subject, *projectID)
	}
	return view + ":" + subject
}

// respondCached serves a view from the summary cache when possible,
// building and storing the marshaled envelope on a miss. Cache failures
// are logged and ignored; the view is always computed on any doubt.
func respondCached(c *gin.Context, store cache.SummaryCache, key string, ttl time.Duration, build func() (any, error)) {
	ctx := c.Request.Context()
	log := logger.GetGinLogger(c)

	if payload, ok, err := store.Get(ctx, key); err != nil {
		log.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	data, err := build()
	if err != nil {
		(&BaseHandler{}).HandleError(c, err)
		return
	}

	payload, err := json.Marshal(dto.NewSuccessResponse(data))
	if err != nil {
		(&BaseHandler{}).InternalError(c, "Failed to encode response")
		return
	}

	if err := store.Set(ctx, key, payload, ttl); err != nil {
		log.Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
