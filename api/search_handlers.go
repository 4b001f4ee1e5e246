package api

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/publora/blog-search-engine/internal/analytics"
	"github.com/publora/blog-search-engine/internal/search"
)

// SearchResultItem is one result as rendered to API clients.
type SearchResultItem struct {
	ID             uint              `json:"id"`
	Type           string            `json:"type"`
	Title          string            `json:"title"`
	Excerpt        string            `json:"excerpt"`
	URL            string            `json:"url"`
	RelevanceScore float64           `json:"relevance_score"`
	Highlights     search.Highlights `json:"highlights"`
	Metadata       ResultMetadata    `json:"metadata"`
}

// ResultMetadata carries the display metadata of a result.
type ResultMetadata struct {
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"published_at"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
}

// SearchMeta is the meta block of a search response.
type SearchMeta struct {
	Query        string `json:"query"`
	Count        int    `json:"count"`
	FuzzyEnabled bool   `json:"fuzzy_enabled"`
}

// SuggestMeta is the meta block of a suggestions response.
type SuggestMeta struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// SearchResponse is the /search response body.
type SearchResponse struct {
	Success bool               `json:"success"`
	Data    []SearchResultItem `json:"data"`
	Meta    SearchMeta         `json:"meta"`
}

// SuggestResponse is the /search/suggestions response body.
type SuggestResponse struct {
	Success bool        `json:"success"`
	Data    []string    `json:"data"`
	Meta    SuggestMeta `json:"meta"`
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

// SearchHandler handles GET /search.
func (api *API) SearchHandler(c *gin.Context) {
	start := time.Now()

	spec, vr := ParseSearchQuery(c, api.cfg)
	if vr.HasErrors() {
		SendValidationError(c, vr)
		return
	}

	result := api.engine.Search(spec)

	items := make([]SearchResultItem, len(result.Hits))
	for i, hit := range result.Hits {
		doc := hit.Document
		items[i] = SearchResultItem{
			ID:             doc.ID,
			Type:           "post",
			Title:          doc.Title,
			Excerpt:        doc.Excerpt,
			URL:            doc.URL(),
			RelevanceScore: roundScore(hit.Score),
			Highlights:     hit.Highlights,
			Metadata: ResultMetadata{
				Slug:        doc.Slug,
				PublishedAt: doc.PublishedAt,
				Author:      doc.AuthorName,
				Category:    doc.CategorySlug,
			},
		}
	}

	api.analytics.Track(analytics.SearchEvent{
		Query:       spec.Query,
		Kind:        "search",
		ResultCount: result.Count,
		Took:        time.Since(start),
	})

	c.JSON(http.StatusOK, SearchResponse{
		Success: true,
		Data:    items,
		Meta: SearchMeta{
			Query:        spec.Query,
			Count:        len(items),
			FuzzyEnabled: true,
		},
	})
}

// SuggestionsHandler handles GET /search/suggestions.
func (api *API) SuggestionsHandler(c *gin.Context) {
	start := time.Now()

	query, limit, vr := ParseSuggestQuery(c, api.cfg)
	if vr.HasErrors() {
		SendValidationError(c, vr)
		return
	}

	titles := api.engine.Suggest(query, limit)

	api.analytics.Track(analytics.SearchEvent{
		Query:       query,
		Kind:        "suggestion",
		ResultCount: len(titles),
		Took:        time.Since(start),
	})

	c.JSON(http.StatusOK, SuggestResponse{
		Success: true,
		Data:    titles,
		Meta:    SuggestMeta{Query: query, Count: len(titles)},
	})
}
