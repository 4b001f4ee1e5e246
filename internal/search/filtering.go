package search

import (
	"strings"

	"github.com/publora/blog-search-engine/model"
)

// matchesFilters reports whether a document survives the query's category,
// author, and date-range filters. Filtering runs before scoring so threshold
// and limit apply to the post-filter candidate set.
func matchesFilters(doc *model.SearchableDocument, spec *QuerySpec) bool {
	if spec.Category != "" && doc.CategorySlug != spec.Category {
		return false
	}
	if spec.Author != "" &&
		!strings.Contains(strings.ToLower(doc.AuthorName), strings.ToLower(spec.Author)) {
		return false
	}
	if spec.DateFrom != nil && doc.PublishedAt.Before(*spec.DateFrom) {
		return false
	}
	if spec.DateTo != nil && doc.PublishedAt.After(*spec.DateTo) {
		return false
	}
	return true
}
