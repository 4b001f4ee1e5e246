package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse is the /health response body.
type HealthResponse struct {
	Status    string    `json:"status"`
	Documents int       `json:"documents"`
	BuiltAt   time.Time `json:"snapshot_built_at,omitempty"`
}

// RefreshResponse is the /internal/refresh response body.
type RefreshResponse struct {
	Success   bool  `json:"success"`
	Documents int   `json:"documents"`
	TookMs    int64 `json:"took_ms"`
}

// HealthHandler handles GET /health.
func (api *API) HealthHandler(c *gin.Context) {
	snap := api.engine.Snapshot()
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Documents: snap.Len(),
		BuiltAt:   snap.BuiltAt,
	})
}

// RefreshHandler handles POST /internal/refresh: it rebuilds the corpus
// snapshot from the source-of-truth store. The persistence layer calls this
// after publishing or unpublishing posts.
func (api *API) RefreshHandler(c *gin.Context) {
	start := time.Now()

	snap, err := api.engine.Refresh(c.Request.Context())
	if err != nil {
		api.logger.Error("snapshot refresh failed", zap.Error(err))
		SendError(c, http.StatusInternalServerError, ErrorCodeRefreshFailed,
			"Corpus refresh failed")
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Success:   true,
		Documents: snap.Len(),
		TookMs:    time.Since(start).Milliseconds(),
	})
}

// AnalyticsHandler handles GET /internal/analytics.
func (api *API) AnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    api.analytics.Report(10),
	})
}
