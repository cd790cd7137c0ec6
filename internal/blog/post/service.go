// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/authz"
	"github.com/lethanhan/inkpress/internal/platform/validate"
	"github.com/lethanhan/inkpress/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for posts.
//
// Every mutating operation follows the same sequence: resolve the resource
// (absence is NotFound), evaluate the authz policy against the resolved
// resource (denial is Forbidden), then mutate. Policy evaluation never runs
// against an unresolved resource.
type Service struct {
	repo     Repository
	comments CommentPurger
	logger   *slog.Logger
}

// NewService constructs a new post [Service].
func NewService(repo Repository, comments CommentPurger, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		comments: comments,
		logger:   logger,
	}
}

// # Publication

// CreateInput holds the data required to publish a new post.
type CreateInput struct {
	Title      string
	Content    string
	CategoryID string
	ImageURL   string
}

/*
CreatePost validates and persists a new post owned by the principal.

Parameters:
  - ctx: context.Context
  - principal: *authz.Principal (the authenticated author)
  - input: CreateInput

Returns:
  - *Post: The created post, hydrated with author and category refs
  - error: Validation, authentication, or persistence failures
*/
func (service *Service) CreatePost(ctx context.Context, principal *authz.Principal, input CreateInput) (*Post, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldContent, input.Content).
		Required(FieldCategory, input.CategoryID).
		UUID(FieldCategory, input.CategoryID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		ID:         uuid.New(),
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
		ImageURL:   input.ImageURL,
		AuthorID:   principal.ID,
	}

	if err := service.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("author_id", principal.ID),
	)

	// Re-read to hydrate the author and category references.
	return service.repo.FindByID(ctx, post.ID)
}

// # Retrieval

/*
GetPost retrieves a single post by id. Public read — no principal needed.

Returns:
  - *Post: Hydrated post entity
  - error: apperr.NotFound if missing
*/
func (service *Service) GetPost(ctx context.Context, id string) (*Post, error) {
	post, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Post")
		}
		return nil, err
	}
	return post, nil
}

/*
ListPosts retrieves posts newest-first, optionally filtered by category.

Returns:
  - []*Post: Page of posts
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListPosts(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

// ListByCategory lists the posts belonging to one category, newest-first.
func (service *Service) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*Post, int, error) {
	return service.repo.List(ctx, Filter{CategoryID: categoryID}, limit, offset)
}

// ListByAuthor lists the posts written by one user, newest-first.
// Public read — an unknown author simply yields an empty page.
func (service *Service) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*Post, int, error) {
	return service.repo.List(ctx, Filter{AuthorID: authorID}, limit, offset)
}

// ListRecentPosts returns the most recently created posts (dashboard view).
func (service *Service) ListRecentPosts(ctx context.Context, limit int) ([]*Post, error) {
	return service.repo.ListRecent(ctx, limit)
}

// CountPosts returns the total number of posts.
func (service *Service) CountPosts(ctx context.Context) (int, error) {
	return service.repo.Count(ctx)
}

// # Mutation

// UpdateInput defines the mutable subset of post fields.
// Nil fields are left unchanged.
type UpdateInput struct {
	Title      *string
	Content    *string
	CategoryID *string
	ImageURL   *string
}

/*
UpdatePost applies a partial update to a post.

Description: Resolves the post (NotFound if absent), asks the policy engine
whether the principal may update it (owner or admin), then persists the
changed fields.

Returns:
  - *Post: The updated post
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) UpdatePost(ctx context.Context, principal *authz.Principal, id string, input UpdateInput) (*Post, error) {

	// Existence is resolved before policy evaluation.
	post, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Post")
		}
		return nil, err
	}

	decision := authz.Decide(principal, authz.ActionUpdatePost, &authz.Resource{ID: post.ID, OwnerID: post.AuthorID})
	if !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.CategoryID != nil {
		post.CategoryID = *input.CategoryID
	}
	if input.ImageURL != nil {
		post.ImageURL = *input.ImageURL
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).
		MaxLen(FieldTitle, post.Title, 200).
		Required(FieldContent, post.Content).
		UUID(FieldCategory, post.CategoryID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", post.ID))

	return service.repo.FindByID(ctx, post.ID)
}

/*
DeletePost removes a post and cascades to its comments.

Description: Resolves the post, evaluates policy (owner or admin), then
deletes all comments referencing the post BEFORE deleting the post itself.
If the comment purge fails the cascade aborts and the post survives — the
system never ends up with comments pointing at a missing post.

Returns:
  - error: NotFound, Forbidden, or persistence failures
*/
func (service *Service) DeletePost(ctx context.Context, principal *authz.Principal, id string) error {
	post, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Post")
		}
		return err
	}

	decision := authz.Decide(principal, authz.ActionDeletePost, &authz.Resource{ID: post.ID, OwnerID: post.AuthorID})
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}

	// Comments first. A failure here aborts the cascade.
	removedComments, err := service.comments.DeleteByPost(ctx, post.ID)
	if err != nil {
		return fmt.Errorf("post_service_cascade_comments_failed: %w", err)
	}

	if err := service.repo.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("post_service_delete_failed: %w", err)
	}

	service.logger.Info("post_deleted",
		slog.String("post_id", post.ID),
		slog.Int64("comments_removed", removedComments),
	)

	return nil
}

// # Engagement

/*
ToggleLike flips the principal's like on a post.

Description: If the principal does not currently like the post the like is
added; if they do, it is removed. Each call always flips — there is no no-op
path. The membership flip is a single atomic statement in the store, so two
interleaved toggles for the same (post, user) cannot create duplicates.

Returns:
  - []string: The resulting like set (user ids)
  - error: NotFound or persistence failures
*/
func (service *Service) ToggleLike(ctx context.Context, principal *authz.Principal, postID string) ([]string, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	exists, err := service.repo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Post")
	}

	liked, err := service.repo.ToggleLike(ctx, postID, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("post_service_toggle_like_failed: %w", err)
	}

	service.logger.Info("post_like_toggled",
		slog.String("post_id", postID),
		slog.String("user_id", principal.ID),
		slog.Bool("liked", liked),
	)

	return service.repo.ListLikes(ctx, postID)
}
