// Package api provides the HTTP layer: routing, request validation, and
// response shaping for the search engine.
package api

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/publora/blog-search-engine/config"
	"github.com/publora/blog-search-engine/internal/search"
)

// Query strings may contain Unicode letters and digits, spaces, hyphens, and
// underscores.
var queryPattern = regexp.MustCompile(`^[\p{L}\p{N} _-]+$`)

const (
	maxQueryRunes = 200
	dateLayout    = "2006-01-02"
)

// ValidationError represents a validation error with field context.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

func validateQueryString(vr *ValidationResult, q string, minRunes int) {
	if q == "" {
		vr.AddError("q", "Query is required")
		return
	}
	runeLen := utf8.RuneCountInString(q)
	if runeLen < minRunes {
		vr.AddError("q", fmt.Sprintf("Query must be at least %d characters", minRunes))
		return
	}
	if runeLen > maxQueryRunes {
		vr.AddError("q", fmt.Sprintf("Query must not exceed %d characters", maxQueryRunes))
		return
	}
	if !queryPattern.MatchString(q) {
		vr.AddError("q", "Query may only contain letters, numbers, spaces, hyphens, and underscores")
	}
}

func parseIntParam(vr *ValidationResult, c *gin.Context, name string, min, max, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		vr.AddError(name, "Must be an integer")
		return fallback
	}
	if val < min || val > max {
		vr.AddError(name, fmt.Sprintf("Must be between %d and %d", min, max))
		return fallback
	}
	return val
}

func parseDateParam(vr *ValidationResult, c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		vr.AddError(name, "Must be a date in YYYY-MM-DD format")
		return nil
	}
	return &t
}

// ParseSearchQuery validates /search parameters and builds a QuerySpec.
// On failure the spec is unusable and the result carries field errors.
func ParseSearchQuery(c *gin.Context, cfg *config.Config) (search.QuerySpec, *ValidationResult) {
	vr := &ValidationResult{Valid: true}
	var spec search.QuerySpec

	spec.Query = c.Query("q")
	validateQueryString(vr, spec.Query, 1)

	spec.Threshold = float64(parseIntParam(vr, c, "threshold", 0, 100, int(cfg.Search.DefaultThreshold)))
	spec.Limit = parseIntParam(vr, c, "limit", 1, cfg.Search.MaxLimit, cfg.Search.DefaultLimit)

	spec.Category = c.Query("category")
	spec.Author = c.Query("author")

	spec.DateFrom = parseDateParam(vr, c, "date_from")
	if to := parseDateParam(vr, c, "date_to"); to != nil {
		if spec.DateFrom != nil && to.Before(*spec.DateFrom) {
			vr.AddError("date_to", "Must not be earlier than date_from")
		} else {
			// The bound is inclusive of the whole day.
			endOfDay := to.Add(24*time.Hour - time.Nanosecond)
			spec.DateTo = &endOfDay
		}
	}

	return spec, vr
}

// ParseSuggestQuery validates /search/suggestions parameters.
func ParseSuggestQuery(c *gin.Context, cfg *config.Config) (query string, limit int, vr *ValidationResult) {
	vr = &ValidationResult{Valid: true}

	query = c.Query("q")
	validateQueryString(vr, query, cfg.Suggest.MinQueryLen)

	limit = parseIntParam(vr, c, "limit", 1, cfg.Suggest.MaxLimit, cfg.Suggest.DefaultLimit)
	return query, limit, vr
}
