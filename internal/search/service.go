// Package search implements the fuzzy matching, scoring, filtering, and
// result assembly pipeline behind /search and /search/suggestions.
//
// Every call is a pure function of (corpus snapshot, query spec): no state is
// retained between requests.
package search

import (
	"sort"
	"time"

	"github.com/publora/blog-search-engine/config"
	"github.com/publora/blog-search-engine/internal/corpus"
	"github.com/publora/blog-search-engine/internal/tokenizer"
)

// Service runs search and suggestion queries against corpus snapshots.
type Service struct {
	cfg config.SearchConfig
	now func() time.Time
}

// NewService creates a search service with the given tunables.
func NewService(cfg config.SearchConfig) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Search scores the filtered candidate corpus against the query and returns
// hits at or above the threshold, sorted by score descending (document ID
// ascending on ties) and capped at the limit.
func (s *Service) Search(snap *corpus.Snapshot, spec QuerySpec) Result {
	queryTerms := tokenizer.Terms(spec.Query)
	if len(queryTerms) == 0 || snap.Len() == 0 {
		return Result{Hits: []Hit{}}
	}

	bud := newBudget(s.cfg.MaxComparisons)
	partial := false

	var candidates []candidate
	for i := range snap.Docs {
		doc := &snap.Docs[i]
		if !matchesFilters(&doc.Doc, &spec) {
			continue
		}
		if bud.exhausted() {
			// Budget gone: stop scoring and return what we have, sorted.
			partial = true
			break
		}

		score, titleSpans, excerptSpans := s.scoreDocument(doc, queryTerms, bud)
		if score < spec.Threshold || score <= 0 {
			continue
		}
		candidates = append(candidates, candidate{
			doc:          doc,
			score:        score,
			titleSpans:   titleSpans,
			excerptSpans: excerptSpans,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].doc.Doc.ID < candidates[j].doc.Doc.ID
	})

	if spec.Limit > 0 && len(candidates) > spec.Limit {
		candidates = candidates[:spec.Limit]
	}

	hits := make([]Hit, len(candidates))
	for i, c := range candidates {
		hits[i] = Hit{
			Document: c.doc.Doc,
			Score:    c.score,
			Highlights: Highlights{
				Title:   renderHighlight(c.doc.Doc.Title, c.titleSpans),
				Excerpt: renderHighlight(c.doc.Doc.Excerpt, c.excerptSpans),
			},
			Rank: i + 1,
		}
	}

	return Result{Hits: hits, Count: len(hits), Partial: partial}
}
