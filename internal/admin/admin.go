// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package admin implements the administrative surface: user management,
content moderation, and the dashboard.

# Core Responsibility

  - User management: List, inspect, update, and delete any account; promote
    by creating admin accounts.
  - Moderation: List and remove any post or comment through the owning
    domains' services, so moderation follows the same cascade rules as
    owner-initiated deletes.
  - Dashboard: Aggregate counts and recent-activity feeds.

Route access is gated by role middleware; each mutating operation is
additionally checked by the authz policy engine, which enforces the
self-deletion guard even for admins.
*/
package admin

import (
	"context"

	"github.com/lethanhan/inkpress/internal/blog/comment"
	"github.com/lethanhan/inkpress/internal/blog/post"
	"github.com/lethanhan/inkpress/internal/platform/authz"
	"github.com/lethanhan/inkpress/internal/users/auth"
)

// UserRepository is the slice of the user store the admin domain needs.
// Satisfied by the auth postgres repository.
type UserRepository interface {
	Create(ctx context.Context, user *auth.User) error
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	List(ctx context.Context, limit, offset int) ([]*auth.User, int, error)
	ListRecent(ctx context.Context, limit int) ([]*auth.User, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, user *auth.User) error
	Delete(ctx context.Context, id string) error
}

// PostModerator is the post-domain collaborator for moderation and the
// dashboard. Satisfied by the post service, so admin deletes run the same
// comment cascade as owner deletes.
type PostModerator interface {
	ListPosts(ctx context.Context, filter post.Filter, limit, offset int) ([]*post.Post, int, error)
	ListRecentPosts(ctx context.Context, limit int) ([]*post.Post, error)
	CountPosts(ctx context.Context) (int, error)
	DeletePost(ctx context.Context, principal *authz.Principal, id string) error
}

// CommentModerator is the comment-domain collaborator for moderation.
// Satisfied by the comment service.
type CommentModerator interface {
	ListAllComments(ctx context.Context, limit, offset int) ([]*comment.Comment, int, error)
	CountComments(ctx context.Context) (int, error)
	DeleteComment(ctx context.Context, principal *authz.Principal, id string) error
}

// DashboardCounts holds the platform-wide totals.
type DashboardCounts struct {
	Users    int `json:"users"`
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Counts      DashboardCounts `json:"counts"`
	RecentUsers []*auth.User    `json:"recent_users"`
	RecentPosts []*post.Post    `json:"recent_posts"`
}
