// Package corpus holds the in-memory snapshot of searchable documents that
// queries run against. Snapshots are immutable once built and installed with
// an atomic pointer swap, so the read path never takes a lock and in-flight
// queries always see one fully-built snapshot.
package corpus

import (
	"sync/atomic"
	"time"

	"github.com/publora/blog-search-engine/internal/tokenizer"
	"github.com/publora/blog-search-engine/model"
)

// IndexedDocument pairs a document projection with its pre-normalized field
// tokens so per-query work never re-tokenizes document text.
type IndexedDocument struct {
	Doc model.SearchableDocument

	TitleTokens   []tokenizer.Token
	ExcerptTokens []tokenizer.Token

	// ContentTerms holds normalized tokens of a bounded prefix of the
	// content field. Offsets are not kept: content is scored, not highlighted.
	ContentTerms []string
}

// Snapshot is an immutable view of the searchable corpus.
// Docs is sorted by document ID ascending.
type Snapshot struct {
	Docs    []IndexedDocument
	BuiltAt time.Time
}

// Len returns the number of documents in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Docs)
}

// Holder owns the currently installed snapshot reference.
// The zero value holds an empty corpus.
type Holder struct {
	ptr atomic.Pointer[Snapshot]
}

// Load returns the current snapshot. It never returns nil.
func (h *Holder) Load() *Snapshot {
	if s := h.ptr.Load(); s != nil {
		return s
	}
	return &Snapshot{}
}

// Install atomically replaces the current snapshot.
func (h *Holder) Install(s *Snapshot) {
	h.ptr.Store(s)
}
