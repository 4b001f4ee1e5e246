// Package model defines the data shapes shared between the post store,
// the corpus snapshot, and the search pipeline.
package model

import "time"

// SearchableDocument is a fixed-shape read projection of a published post.
// It is populated once per corpus refresh and never mutated afterwards, so
// the matching engine stays decoupled from the persistence model.
type SearchableDocument struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
	Slug         string    `json:"slug"`
	AuthorName   string    `json:"author_name"`
	CategorySlug string    `json:"category_slug"`
	CategoryName string    `json:"category_name"`
	PublishedAt  time.Time `json:"published_at"`
}

// URL returns the public path for the post behind this document.
func (d *SearchableDocument) URL() string {
	return "/posts/" + d.Slug
}
