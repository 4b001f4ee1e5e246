package search

import (
	"time"

	"github.com/publora/blog-search-engine/internal/corpus"
	"github.com/publora/blog-search-engine/model"
)

// QuerySpec is a validated search request. It is produced by the API layer's
// validator; the pipeline assumes every field is already in range.
type QuerySpec struct {
	Query     string
	Threshold float64 // minimum relevance score, 0-100
	Limit     int
	Category  string     // optional category slug, exact match
	Author    string     // optional author name, case-insensitive substring
	DateFrom  *time.Time // optional inclusive lower bound on published_at
	DateTo    *time.Time // optional inclusive upper bound on published_at
}

// Highlights carries the title and excerpt strings with match spans wrapped
// in <mark> markers. Empty when the field had no qualifying match.
type Highlights struct {
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

// Hit is one scored, ranked search result.
type Hit struct {
	Document   model.SearchableDocument
	Score      float64 // relevance score, threshold..100
	Highlights Highlights
	Rank       int // 1-based position after sorting
}

// Result is the outcome of one search call.
type Result struct {
	Hits  []Hit
	Count int
	// Partial is set when the comparison budget ran out before the whole
	// candidate set was scored. The hits present are still correctly sorted.
	Partial bool
}

// span is a byte range in a field's original text.
type span struct {
	start int
	end   int
}

// candidate is a document that passed filtering and thresholding, pending sort.
type candidate struct {
	doc          *corpus.IndexedDocument
	score        float64
	titleSpans   []span
	excerptSpans []span
}
