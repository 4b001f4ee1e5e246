package search

import (
	"sort"

	"github.com/publora/blog-search-engine/internal/corpus"
	"github.com/publora/blog-search-engine/internal/fuzzy"
	"github.com/publora/blog-search-engine/internal/tokenizer"
)

// suggestionCandidate tracks one distinct title during suggestion ranking.
type suggestionCandidate struct {
	title string
	score float64
	docID uint
}

// Suggest returns up to limit distinct post titles matching the partial
// query, strongest match first. Only titles are searched, and a title token
// that starts with a query token counts as a full match, so short prefixes
// surface relevant titles without paying full fuzzy-match distances.
// Minimum query length is enforced by the caller's validation.
func (s *Service) Suggest(snap *corpus.Snapshot, query string, limit int) []string {
	queryTerms := tokenizer.Terms(query)
	if len(queryTerms) == 0 || snap.Len() == 0 || limit <= 0 {
		return []string{}
	}

	bud := newBudget(s.cfg.MaxComparisons)

	var candidates []suggestionCandidate
	seen := make(map[string]struct{})

	for i := range snap.Docs {
		doc := &snap.Docs[i]
		if len(doc.TitleTokens) == 0 || bud.exhausted() {
			continue
		}

		score := s.suggestionScore(queryTerms, doc.TitleTokens, bud)
		if score <= 0 {
			continue
		}

		key := tokenizer.Fold(doc.Doc.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		candidates = append(candidates, suggestionCandidate{
			title: doc.Doc.Title,
			score: score,
			docID: doc.Doc.ID,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].docID < candidates[j].docID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.title
	}
	return titles
}

// suggestionScore averages, over the query terms, the best title-token match
// for each. Prefix matches score 1.0, which is always at least as high as an
// equal-length fuzzy match.
func (s *Service) suggestionScore(queryTerms []string, titleTokens []tokenizer.Token, bud *budget) float64 {
	total := 0.0
	for _, qt := range queryTerms {
		best := 0.0
		for _, tt := range titleTokens {
			if !bud.spend() {
				break
			}
			sim := fuzzy.Similarity(qt, tt.Text)
			if fuzzy.HasPrefixFold(tt.Text, qt) {
				sim = 1
			}
			if sim > best {
				best = sim
			}
			if best == 1 {
				break
			}
		}
		if best >= s.cfg.MatchFloor {
			total += best
		}
	}
	return total / float64(len(queryTerms))
}
