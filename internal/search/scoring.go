package search

import (
	"time"

	"github.com/publora/blog-search-engine/internal/corpus"
	"github.com/publora/blog-search-engine/internal/fuzzy"
	"github.com/publora/blog-search-engine/internal/tokenizer"
)

// budget caps the number of token similarity computations in one query.
type budget struct {
	remaining int
}

func newBudget(n int) *budget {
	return &budget{remaining: n}
}

// spend consumes one comparison; it returns false once the budget is gone.
func (b *budget) spend() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

func (b *budget) exhausted() bool {
	return b.remaining <= 0
}

// alignTerms greedily assigns each query term to its best-matching unused
// field term (one-to-one; ties resolved to the earliest field position by the
// strict comparison). It returns one score per query term and the index of
// the field term it matched, or -1. Scores below the match floor contribute 0
// and do not consume a field term.
func (s *Service) alignTerms(queryTerms, fieldTerms []string, bud *budget) (scores []float64, matched []int) {
	scores = make([]float64, len(queryTerms))
	matched = make([]int, len(queryTerms))
	used := make([]bool, len(fieldTerms))

	for i, qt := range queryTerms {
		matched[i] = -1
		best := -1
		bestSim := 0.0
		for j, ft := range fieldTerms {
			if used[j] {
				continue
			}
			if !bud.spend() {
				break
			}
			if sim := fuzzy.Similarity(qt, ft); sim > bestSim {
				bestSim = sim
				best = j
				if sim == 1 {
					break
				}
			}
		}
		if best >= 0 && bestSim >= s.cfg.MatchFloor {
			scores[i] = bestSim
			matched[i] = best
			used[best] = true
		}
	}
	return scores, matched
}

// scoreTokenField scores one offset-bearing field and collects the spans of
// field tokens that a query term matched at or above the floor.
func (s *Service) scoreTokenField(queryTerms []string, fieldTokens []tokenizer.Token, bud *budget) (float64, []span) {
	if len(fieldTokens) == 0 || len(queryTerms) == 0 {
		return 0, nil
	}
	fieldTerms := make([]string, len(fieldTokens))
	for i, t := range fieldTokens {
		fieldTerms[i] = t.Text
	}

	scores, matched := s.alignTerms(queryTerms, fieldTerms, bud)

	total := 0.0
	var spans []span
	for i, sc := range scores {
		total += sc
		if j := matched[i]; j >= 0 {
			spans = append(spans, span{start: fieldTokens[j].Start, end: fieldTokens[j].End})
		}
	}
	return total / float64(len(queryTerms)), spans
}

// scoreTermField scores a field that keeps no offsets (content).
func (s *Service) scoreTermField(queryTerms, fieldTerms []string, bud *budget) float64 {
	if len(fieldTerms) == 0 || len(queryTerms) == 0 {
		return 0
	}
	scores, _ := s.alignTerms(queryTerms, fieldTerms, bud)
	total := 0.0
	for _, sc := range scores {
		total += sc
	}
	return total / float64(len(queryTerms))
}

// scoreDocument combines the weighted per-field similarities into a 0-100
// relevance score and collects highlight spans for title and excerpt.
// The recency bonus only applies to documents that already match, so it can
// never lift a non-matching document above a positive threshold.
func (s *Service) scoreDocument(doc *corpus.IndexedDocument, queryTerms []string, bud *budget) (float64, []span, []span) {
	titleScore, titleSpans := s.scoreTokenField(queryTerms, doc.TitleTokens, bud)
	excerptScore, excerptSpans := s.scoreTokenField(queryTerms, doc.ExcerptTokens, bud)
	contentScore := s.scoreTermField(queryTerms, doc.ContentTerms, bud)

	wTitle := s.cfg.TitleWeight
	wExcerpt := s.cfg.ExcerptWeight
	wContent := s.cfg.ContentWeight

	base := 100 * (wTitle*titleScore + wExcerpt*excerptScore + wContent*contentScore) /
		(wTitle + wExcerpt + wContent)
	if base <= 0 {
		return 0, nil, nil
	}

	score := base + s.recencyBonus(doc.Doc.PublishedAt)
	if score > 100 {
		score = 100
	}
	return score, titleSpans, excerptSpans
}

// recencyBonus decays monotonically with post age and is bounded by
// RecencyMaxBonus.
func (s *Service) recencyBonus(publishedAt time.Time) float64 {
	ageDays := s.now().Sub(publishedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return s.cfg.RecencyMaxBonus / (1 + ageDays/s.cfg.RecencyHalfLifeDays)
}
