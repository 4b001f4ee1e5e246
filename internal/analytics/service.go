// Package analytics tracks search usage in memory for the operator dashboard.
package analytics

import (
	"sort"
	"sync"
	"time"
)

const maxEventsToKeep = 10000

// SearchEvent records one executed search or suggestion query.
type SearchEvent struct {
	Query       string        `json:"query"`
	Kind        string        `json:"kind"` // "search" or "suggestion"
	ResultCount int           `json:"result_count"`
	Took        time.Duration `json:"-"`
	Timestamp   time.Time     `json:"timestamp"`
}

// QueryCount pairs a query with how often it was seen.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// Report is the aggregated analytics view.
type Report struct {
	TotalSearches     int          `json:"total_searches"`
	TotalSuggestions  int          `json:"total_suggestions"`
	AvgResponseTimeMs int64        `json:"avg_response_time_ms"`
	PopularQueries    []QueryCount `json:"popular_queries"`
	ZeroResultQueries []QueryCount `json:"zero_result_queries"`
}

// Service aggregates search events. Events are kept in a bounded in-memory
// ring; nothing is persisted.
type Service struct {
	mu     sync.RWMutex
	events []SearchEvent
}

// NewService creates an analytics service.
func NewService() *Service {
	return &Service{events: make([]SearchEvent, 0)}
}

// Track records a search event.
func (s *Service) Track(event SearchEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.Timestamp = time.Now()
	s.events = append(s.events, event)
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// Report aggregates the retained events, listing at most topN popular and
// zero-result queries.
func (s *Service) Report(topN int) Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var report Report
	var totalTook time.Duration
	popular := make(map[string]int)
	zeroes := make(map[string]int)

	for _, e := range s.events {
		switch e.Kind {
		case "suggestion":
			report.TotalSuggestions++
		default:
			report.TotalSearches++
			popular[e.Query]++
			if e.ResultCount == 0 {
				zeroes[e.Query]++
			}
		}
		totalTook += e.Took
	}

	if n := len(s.events); n > 0 {
		report.AvgResponseTimeMs = (totalTook / time.Duration(n)).Milliseconds()
	}
	report.PopularQueries = topCounts(popular, topN)
	report.ZeroResultQueries = topCounts(zeroes, topN)
	return report
}

func topCounts(counts map[string]int, n int) []QueryCount {
	out := make([]QueryCount, 0, len(counts))
	for q, c := range counts {
		out = append(out, QueryCount{Query: q, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Query < out[j].Query
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
