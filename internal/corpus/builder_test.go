package corpus

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publora/blog-search-engine/model"
)

func publishedAt(day int) time.Time {
	return time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestBuildSkipsDrafts(t *testing.T) {
	docs := []model.SearchableDocument{
		{ID: 1, Title: "Published Post", PublishedAt: publishedAt(1)},
		{ID: 2, Title: "Draft Post"}, // zero PublishedAt
		{ID: 3, Title: "Another Published", PublishedAt: publishedAt(2)},
	}

	snap, err := Build(context.Background(), docs, BuildOptions{})
	require.NoError(t, err)

	require.Equal(t, 2, snap.Len())
	assert.Equal(t, uint(1), snap.Docs[0].Doc.ID)
	assert.Equal(t, uint(3), snap.Docs[1].Doc.ID)
}

func TestBuildSortsByDocumentID(t *testing.T) {
	docs := []model.SearchableDocument{
		{ID: 30, Title: "C", PublishedAt: publishedAt(1)},
		{ID: 10, Title: "A", PublishedAt: publishedAt(2)},
		{ID: 20, Title: "B", PublishedAt: publishedAt(3)},
	}

	snap, err := Build(context.Background(), docs, BuildOptions{PoolSize: 2})
	require.NoError(t, err)

	require.Equal(t, 3, snap.Len())
	for i := 1; i < len(snap.Docs); i++ {
		assert.Less(t, snap.Docs[i-1].Doc.ID, snap.Docs[i].Doc.ID)
	}
}

func TestBuildTokenizesFields(t *testing.T) {
	docs := []model.SearchableDocument{
		{
			ID:          1,
			Title:       "Laravel 11 Release",
			Excerpt:     "What is new",
			Content:     "The framework ships with a slimmer skeleton.",
			PublishedAt: publishedAt(1),
		},
	}

	snap, err := Build(context.Background(), docs, BuildOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())

	indexed := snap.Docs[0]
	require.Len(t, indexed.TitleTokens, 3)
	assert.Equal(t, "laravel", indexed.TitleTokens[0].Text)
	assert.Len(t, indexed.ExcerptTokens, 3)
	assert.Contains(t, indexed.ContentTerms, "skeleton")
}

func TestBuildCapsContentPrefix(t *testing.T) {
	content := strings.Repeat("alpha ", 100) + "omega"
	docs := []model.SearchableDocument{
		{ID: 1, Title: "Long Post", Content: content, PublishedAt: publishedAt(1)},
	}

	snap, err := Build(context.Background(), docs, BuildOptions{ContentPrefixRunes: 30})
	require.NoError(t, err)

	require.Equal(t, 1, snap.Len())
	terms := snap.Docs[0].ContentTerms
	assert.NotContains(t, terms, "omega", "terms beyond the content prefix must not be indexed")
	assert.Contains(t, terms, "alpha")
}

func TestBuildSanitizesInvalidUTF8(t *testing.T) {
	docs := []model.SearchableDocument{
		{ID: 1, Title: "Bad \xff Bytes", PublishedAt: publishedAt(1)},
	}

	snap, err := Build(context.Background(), docs, BuildOptions{})
	require.NoError(t, err)

	title := snap.Docs[0].Doc.Title
	assert.True(t, strings.ContainsRune(title, '�'), "invalid bytes are replaced, not dropped")
	for _, tok := range snap.Docs[0].TitleTokens {
		assert.LessOrEqual(t, tok.End, len(title))
	}
}

func TestBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []model.SearchableDocument{
		{ID: 1, Title: "Post", PublishedAt: publishedAt(1)},
	}
	_, err := Build(ctx, docs, BuildOptions{})
	assert.Error(t, err)
}

func TestBuildEmptyInput(t *testing.T) {
	snap, err := Build(context.Background(), nil, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
	assert.False(t, snap.BuiltAt.IsZero())
}
