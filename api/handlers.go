package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/publora/blog-search-engine/config"
	"github.com/publora/blog-search-engine/internal/analytics"
	"github.com/publora/blog-search-engine/internal/corpus"
	"github.com/publora/blog-search-engine/internal/metrics"
	"github.com/publora/blog-search-engine/internal/search"
)

// SearchEngine is the engine surface the HTTP layer depends on.
type SearchEngine interface {
	Search(spec search.QuerySpec) search.Result
	Suggest(query string, limit int) []string
	Refresh(ctx context.Context) (*corpus.Snapshot, error)
	Snapshot() *corpus.Snapshot
}

// API holds the handler dependencies.
type API struct {
	engine    SearchEngine
	analytics *analytics.Service
	cfg       *config.Config
	logger    *zap.Logger
}

// NewAPI creates the handler set.
func NewAPI(engine SearchEngine, tracker *analytics.Service, cfg *config.Config, logger *zap.Logger) *API {
	return &API{engine: engine, analytics: tracker, cfg: cfg, logger: logger}
}

// SetupRoutes registers middleware and routes on the router.
func SetupRoutes(router *gin.Engine, api *API) {
	router.Use(
		RecoveryMiddleware(api.logger),
		RequestIDMiddleware(),
		RequestSizeLimitMiddleware(api.cfg.HTTP.MaxBodyBytes),
		CORSMiddleware(),
		AccessLogMiddleware(api.logger),
		metrics.Middleware(),
	)

	router.GET("/search", api.SearchHandler)
	router.GET("/search/suggestions", api.SuggestionsHandler)

	router.GET("/health", api.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	internal := router.Group("/internal")
	internal.POST("/refresh", api.RefreshHandler)
	internal.GET("/analytics", api.AnalyticsHandler)
}
