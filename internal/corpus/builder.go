package corpus

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/publora/blog-search-engine/internal/tokenizer"
	"github.com/publora/blog-search-engine/model"
)

// Loader supplies document projections from the source-of-truth post store.
type Loader interface {
	LoadPublished(ctx context.Context) ([]model.SearchableDocument, error)
}

// BuildOptions control snapshot construction.
type BuildOptions struct {
	// ContentPrefixRunes caps how much of each content field is tokenized.
	ContentPrefixRunes int
	// PoolSize is the number of workers pre-tokenizing documents.
	PoolSize int
}

// Build tokenizes the given documents into a new Snapshot. Documents without
// a publish date are skipped: drafts are never indexed. Tokenization is fanned
// out over a worker pool; the snapshot is returned only once every document
// has been fully prepared.
func Build(ctx context.Context, docs []model.SearchableDocument, opts BuildOptions) (*Snapshot, error) {
	if opts.ContentPrefixRunes <= 0 {
		opts.ContentPrefixRunes = 2000
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = 4
	}

	published := make([]model.SearchableDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.PublishedAt.IsZero() {
			continue
		}
		published = append(published, doc)
	}

	indexed := make([]IndexedDocument, len(published))

	pool, err := ants.NewPool(opts.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("create tokenizer pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range published {
		if err := ctx.Err(); err != nil {
			break
		}
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			indexed[i] = indexDocument(published[i], opts.ContentPrefixRunes)
		})
		if submitErr != nil {
			// Pool rejected the task; prepare the document inline.
			indexed[i] = indexDocument(published[i], opts.ContentPrefixRunes)
			wg.Done()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("snapshot build canceled: %w", err)
	}

	sort.Slice(indexed, func(a, b int) bool {
		return indexed[a].Doc.ID < indexed[b].Doc.ID
	})

	return &Snapshot{Docs: indexed, BuiltAt: time.Now()}, nil
}

func indexDocument(doc model.SearchableDocument, contentPrefixRunes int) IndexedDocument {
	doc.Title = tokenizer.Sanitize(doc.Title)
	doc.Excerpt = tokenizer.Sanitize(doc.Excerpt)

	return IndexedDocument{
		Doc:           doc,
		TitleTokens:   tokenizer.Normalize(doc.Title),
		ExcerptTokens: tokenizer.Normalize(doc.Excerpt),
		ContentTerms:  tokenizer.Terms(truncateRunes(doc.Content, contentPrefixRunes)),
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
