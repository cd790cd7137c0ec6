// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package comment

import "context"

// Repository defines the persistence contract for comments.
type Repository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *Comment) error

	// FindByID loads a comment with its commenter reference.
	// Returns apperr.NotFound if no such comment exists.
	FindByID(ctx context.Context, id string) (*Comment, error)

	// ListByPost returns a post's comments, newest first, with total count.
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error)

	// ListAll returns comments across all posts, newest first, with total
	// count. Used by moderation views.
	ListAll(ctx context.Context, limit, offset int) ([]*Comment, int, error)

	// Count returns the total number of comments.
	Count(ctx context.Context) (int, error)

	// Update persists changes to an existing comment.
	Update(ctx context.Context, comment *Comment) error

	// Delete removes a single comment.
	Delete(ctx context.Context, id string) error

	// DeleteByPost removes every comment referencing the post and returns
	// the number removed. This is the cascade entry point used when a post
	// is deleted.
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}

// PostFinder is the narrow collaborator used to verify that a comment's
// target post exists. It is satisfied by the post repository and injected in
// main, keeping this package free of a dependency on the post domain.
type PostFinder interface {
	Exists(ctx context.Context, id string) (bool, error)
}
