// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package post implements the article domain: authorship, publication,
likes, and the comment cascade.

# Core Responsibility

  - Publication: Defines the [Post] entity and its lifecycle.
  - Ownership: Every post is owned by its author; mutation rights are decided
    by the authz policy engine, never by ad hoc comparisons in handlers.
  - Engagement: Tracks which users like a post as a set relation.

Likes are modeled as rows in a dedicated relation keyed by (post, user), so a
user appears at most once per post and the like count is always derived from
the set — there is no separately maintained counter to drift out of sync.
*/
package post

import "time"

// # Core Entities

// AuthorRef is the denormalized author view embedded in post responses.
type AuthorRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// CategoryRef is the denormalized category view embedded in post responses.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post represents a published article.
type Post struct {
	ID         string       `json:"id"` // UUIDv7
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	CategoryID string       `json:"-"`
	Category   *CategoryRef `json:"category,omitempty"`
	ImageURL   string       `json:"image,omitempty"`
	AuthorID   string       `json:"-"`
	Author     *AuthorRef   `json:"author,omitempty"`

	// Likes holds the ids of users who currently like the post.
	// It is loaded from the like relation on every read, never cached.
	Likes []string `json:"likes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikeCount returns the number of likes, derived from the set.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// # Search & Filtering

// Filter holds parameters for listing posts.
// Restrictions combine with AND when more than one is set.
type Filter struct {
	// CategoryID restricts the listing to one category when non-empty.
	CategoryID string

	// AuthorID restricts the listing to one author when non-empty.
	AuthorID string
}

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldCategory = "category"
	FieldImage    = "image"
)
