// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package post

import "context"

// Repository defines the persistence contract for posts and their like set.
type Repository interface {
	// Create persists a new post.
	Create(ctx context.Context, post *Post) error

	// FindByID loads a post with its author, category, and like set.
	// Returns apperr.NotFound if no such post exists.
	FindByID(ctx context.Context, id string) (*Post, error)

	// Exists reports whether a post with the given id exists.
	Exists(ctx context.Context, id string) (bool, error)

	// List returns posts newest-first, optionally filtered, with total count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error)

	// ListRecent returns the most recently created posts.
	ListRecent(ctx context.Context, limit int) ([]*Post, error)

	// Count returns the total number of posts.
	Count(ctx context.Context) (int, error)

	// Update persists changes to an existing post.
	Update(ctx context.Context, post *Post) error

	// Delete removes a post. It does NOT touch comments; the service
	// orchestrates the cascade so ordering is explicit.
	Delete(ctx context.Context, id string) error

	// ToggleLike atomically flips the (post, user) like membership.
	// Each direction is a single statement, so concurrent toggles cannot
	// produce duplicate set entries. Returns true when the flip resulted
	// in a like, false when it resulted in an unlike.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)

	// ListLikes returns the ids of users currently liking the post.
	ListLikes(ctx context.Context, postID string) ([]string, error)
}

// CommentPurger is the narrow collaborator used for the delete cascade.
// It is implemented by the comment repository and injected in main, keeping
// this package free of a dependency on the comment domain.
type CommentPurger interface {
	// DeleteByPost removes every comment referencing the post and returns
	// the number of comments removed.
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}
