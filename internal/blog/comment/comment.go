// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package comment implements the discussion domain: comments attached to posts.

# Core Responsibility

  - Threading: Every comment belongs to exactly one post.
  - Ownership: A comment is owned by its author; mutation rights are decided
    by the authz policy engine.
  - Cascade target: The post domain purges comments through a narrow
    interface when a post is deleted, so no comment ever outlives its post.
*/
package comment

import "time"

// UserRef is the denormalized commenter view embedded in comment responses.
type UserRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Comment represents a single comment on a post.
type Comment struct {
	ID      string   `json:"id"` // UUIDv7
	PostID  string   `json:"post_id"`
	UserID  string   `json:"-"`
	User    *UserRef `json:"user,omitempty"`
	Content string   `json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldContent = "content"
	FieldPost    = "post"
)
