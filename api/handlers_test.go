package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/publora/blog-search-engine/config"
	"github.com/publora/blog-search-engine/internal/analytics"
	"github.com/publora/blog-search-engine/internal/engine"
	"github.com/publora/blog-search-engine/model"
)

// stubLoader serves a fixed document set, or fails on demand.
type stubLoader struct {
	docs []model.SearchableDocument
	err  error
}

func (l *stubLoader) LoadPublished(_ context.Context) ([]model.SearchableDocument, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.docs, nil
}

func fixtureDocuments() []model.SearchableDocument {
	return []model.SearchableDocument{
		{
			ID: 1, Title: "Laravel 11 Release", Excerpt: "What is new in Laravel 11",
			Content: "The laravel framework ships with a slimmer skeleton.",
			Slug:    "laravel-11-release", AuthorName: "Taylor Otwell",
			CategorySlug: "frameworks", CategoryName: "Frameworks",
			PublishedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, Title: "Laravel Best Practices", Excerpt: "Patterns that keep apps maintainable",
			Content: "Keep controllers thin.",
			Slug:    "laravel-best-practices", AuthorName: "Jane Smith",
			CategorySlug: "frameworks", CategoryName: "Frameworks",
			PublishedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: 3, Title: "Cooking With Cast Iron", Excerpt: "Weeknight recipes",
			Content: "A good stew rewards patience.",
			Slug:    "cooking-with-cast-iron", AuthorName: "Bob Harris",
			CategorySlug: "cooking", CategoryName: "Cooking",
			PublishedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		},
	}
}

func setupTestServer(t *testing.T, loader *stubLoader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	eng := engine.New(cfg, loader, zap.NewNop())
	if loader.err == nil {
		_, err := eng.Refresh(context.Background())
		require.NoError(t, err)
	}

	router := gin.New()
	SetupRoutes(router, NewAPI(eng, analytics.NewService(), &cfg, zap.NewNop()))
	return router
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestSearchEndpoint(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodGet, "/search?q=laravel")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "laravel", resp.Meta.Query)
	assert.Equal(t, 2, resp.Meta.Count)
	assert.True(t, resp.Meta.FuzzyEnabled)

	first := resp.Data[0]
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, "post", first.Type)
	assert.Equal(t, "/posts/laravel-11-release", first.URL)
	assert.Equal(t, "laravel-11-release", first.Metadata.Slug)
	assert.Equal(t, "Taylor Otwell", first.Metadata.Author)
	assert.Equal(t, "frameworks", first.Metadata.Category)
	assert.Contains(t, first.Highlights.Title, "<mark>Laravel</mark>")

	for _, item := range resp.Data {
		assert.GreaterOrEqual(t, item.RelevanceScore, 40.0)
		assert.LessOrEqual(t, item.RelevanceScore, 100.0)
	}
}

func TestSearchEndpointEmptyResultIsArray(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodGet, "/search?q=zzzz")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Body.String(), `"data":[]`, "empty results must serialize as [], not null")
}

func TestSearchEndpointLimit(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodGet, "/search?q=laravel&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestSearchEndpointCategoryFilter(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodGet, "/search?q=laravel&category=cooking")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestSearchEndpointValidation(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	tests := []struct {
		name   string
		target string
	}{
		{"missing q", "/search"},
		{"forbidden characters", "/search?q=laravel%21"},
		{"threshold out of range", "/search?q=laravel&threshold=150"},
		{"limit out of range", "/search?q=laravel&limit=500"},
		{"inverted date range", "/search?q=laravel&date_from=2026-06-01&date_to=2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.target)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var apiErr APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
			assert.False(t, apiErr.Success)
			assert.Equal(t, ErrorCodeValidationFailed, apiErr.Code)
			assert.NotEmpty(t, apiErr.Errors)
			assert.NotEmpty(t, apiErr.RequestID)
		})
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodGet, "/search/suggestions?q=lara")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuggestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Laravel 11 Release", "Laravel Best Practices"}, resp.Data)
	assert.Equal(t, 2, resp.Meta.Count)
}

func TestSuggestionsEndpointValidation(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	// Two characters is below the minimum query length.
	w := doRequest(router, http.MethodGet, "/search/suggestions?q=la")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(router, http.MethodGet, "/search/suggestions?q=lara&limit=11")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Documents)
}

func TestRefreshEndpoint(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodPost, "/internal/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Documents)
}

func TestRefreshEndpointFailure(t *testing.T) {
	router := setupTestServer(t, &stubLoader{err: errors.New("database locked")})

	w := doRequest(router, http.MethodPost, "/internal/refresh")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrorCodeRefreshFailed, apiErr.Code)
	assert.NotContains(t, w.Body.String(), "database locked", "internal errors must not leak to clients")
}

func TestAnalyticsEndpoint(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	doRequest(router, http.MethodGet, "/search?q=laravel")
	doRequest(router, http.MethodGet, "/search?q=zzzz")
	doRequest(router, http.MethodGet, "/search/suggestions?q=lara")

	w := doRequest(router, http.MethodGet, "/internal/analytics")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    analytics.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.TotalSearches)
	assert.Equal(t, 1, resp.Data.TotalSuggestions)
	require.NotEmpty(t, resp.Data.ZeroResultQueries)
	assert.Equal(t, "zzzz", resp.Data.ZeroResultQueries[0].Query)
}

func TestCORSPreflight(t *testing.T) {
	router := setupTestServer(t, &stubLoader{docs: fixtureDocuments()})

	w := doRequest(router, http.MethodOptions, "/search")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
