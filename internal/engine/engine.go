// Package engine wires the corpus snapshot, the search service, and the
// source-of-truth loader together and owns the snapshot refresh cycle.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/publora/blog-search-engine/config"
	"github.com/publora/blog-search-engine/internal/corpus"
	internalErrors "github.com/publora/blog-search-engine/internal/errors"
	"github.com/publora/blog-search-engine/internal/metrics"
	"github.com/publora/blog-search-engine/internal/search"
)

// Engine serves search and suggestion queries against the currently installed
// corpus snapshot. Queries are lock-free reads; Refresh is the only mutation
// point and installs new snapshots atomically.
type Engine struct {
	cfg      config.Config
	loader   corpus.Loader
	holder   corpus.Holder
	searcher *search.Service
	logger   *zap.Logger
}

// New creates an engine. The corpus starts empty until the first Refresh.
func New(cfg config.Config, loader corpus.Loader, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		loader:   loader,
		searcher: search.NewService(cfg.Search),
		logger:   logger,
	}
}

// Snapshot returns the currently installed corpus snapshot.
func (e *Engine) Snapshot() *corpus.Snapshot {
	return e.holder.Load()
}

// Refresh rebuilds the corpus snapshot from the source-of-truth store and
// installs it. In-flight queries keep reading the previous snapshot until the
// swap; they never see a partially built one.
func (e *Engine) Refresh(ctx context.Context) (*corpus.Snapshot, error) {
	start := time.Now()

	docs, err := e.loader.LoadPublished(ctx)
	if err != nil {
		return nil, internalErrors.NewSnapshotBuildError(err)
	}

	snap, err := corpus.Build(ctx, docs, corpus.BuildOptions{
		ContentPrefixRunes: e.cfg.Search.ContentPrefixRunes,
		PoolSize:           e.cfg.Search.BuildPoolSize,
	})
	if err != nil {
		return nil, internalErrors.NewSnapshotBuildError(err)
	}

	e.holder.Install(snap)
	took := time.Since(start)
	metrics.ObserveSnapshot(snap.Len(), took)
	e.logger.Info("corpus snapshot installed",
		zap.Int("documents", snap.Len()),
		zap.Duration("took", took))
	return snap, nil
}

// StartPeriodicRefresh rebuilds the snapshot every interval until ctx is
// canceled. A failed rebuild keeps the previous snapshot installed.
func (e *Engine) StartPeriodicRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := e.Refresh(ctx); err != nil {
					e.logger.Warn("periodic snapshot refresh failed", zap.Error(err))
				}
			}
		}
	}()
}

// Search runs one search query against the current snapshot.
func (e *Engine) Search(spec search.QuerySpec) search.Result {
	result := e.searcher.Search(e.holder.Load(), spec)
	metrics.ObserveSearch(result.Count, result.Partial)
	if result.Partial {
		e.logger.Warn("search degraded to partial results",
			zap.Error(internalErrors.ErrBudgetExceeded),
			zap.String("query", spec.Query),
			zap.Int("results", result.Count))
	}
	return result
}

// Suggest runs one autocomplete query against the current snapshot.
func (e *Engine) Suggest(query string, limit int) []string {
	titles := e.searcher.Suggest(e.holder.Load(), query, limit)
	metrics.ObserveSuggestion()
	return titles
}
