// Package store persists posts in the source-of-truth database and projects
// published posts into searchable documents for corpus snapshots.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/publora/blog-search-engine/model"
)

// Post statuses. Only published posts with a publish date are searchable.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is the persistence model for a blog post.
type Post struct {
	ID           uint   `gorm:"primarykey"`
	Title        string `gorm:"not null"`
	Slug         string `gorm:"uniqueIndex;not null"`
	Excerpt      string
	Content      string
	AuthorName   string `gorm:"index"`
	CategorySlug string `gorm:"index"`
	CategoryName string
	Status       string `gorm:"index;default:draft"`
	PublishedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate derives a URL-safe slug from the title when none is set.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	return nil
}

// PostStore wraps the posts table.
type PostStore struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at path and runs
// migrations. Use ":memory:" for an in-memory database in tests.
func Open(path string) (*PostStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if err := db.AutoMigrate(&Post{}); err != nil {
		return nil, fmt.Errorf("migrate posts: %w", err)
	}
	return &PostStore{db: db}, nil
}

// Create inserts a post.
func (s *PostStore) Create(ctx context.Context, post *Post) error {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Publish marks a post as published as of now.
func (s *PostStore) Publish(ctx context.Context, id uint) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": StatusPublished, "published_at": now})
	if res.Error != nil {
		return fmt.Errorf("publish post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("publish post %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// LoadPublished projects all published posts into searchable documents,
// ordered by ID. It implements corpus.Loader.
func (s *PostStore) LoadPublished(ctx context.Context) ([]model.SearchableDocument, error) {
	var posts []Post
	err := s.db.WithContext(ctx).
		Where("status = ? AND published_at IS NOT NULL", StatusPublished).
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("load published posts: %w", err)
	}

	docs := make([]model.SearchableDocument, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, model.SearchableDocument{
			ID:           p.ID,
			Title:        p.Title,
			Excerpt:      p.Excerpt,
			Content:      p.Content,
			Slug:         p.Slug,
			AuthorName:   p.AuthorName,
			CategorySlug: p.CategorySlug,
			CategoryName: p.CategoryName,
			PublishedAt:  *p.PublishedAt,
		})
	}
	return docs, nil
}
