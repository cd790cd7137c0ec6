// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package comment

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

// Service orchestrates business rules for comments.
type Service struct {
	repo   Repository
	posts  PostFinder
	logger *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repo Repository, posts PostFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  posts,
		logger: logger,
	}
}

/*
CreateComment validates and persists a new comment on a post.

Description: The target post must exist; commenting on a missing post is
NotFound, not a dangling foreign key surfacing later as a 500.

Parameters:
  - ctx: context.Context
  - principal: *authz.Principal (the authenticated commenter)
  - postID: string
  - content: string

Returns:
  - *Comment: The created comment, hydrated with the commenter reference
  - error: Validation, authentication, NotFound, or persistence failures
*/
func (service *Service) CreateComment(ctx context.Context, principal *authz.Principal, postID, content string) (*Comment, error) {
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, content).
		MaxLen(FieldContent, content, 2000).
		Required(FieldPost, postID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Post")
	}

	comment := &Comment{
		ID:      uuid.New(),
		PostID:  postID,
		UserID:  principal.ID,
		Content: content,
	}

	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("user_id", principal.ID),
	)

	return service.repo.FindByID(ctx, comment.ID)
}

// GetComment retrieves a single comment by id. Public read.
func (service *Service) GetComment(ctx context.Context, id string) (*Comment, error) {
	comment, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, err
	}
	return comment, nil
}

// ListByPost returns a post's comments, newest first. The post must exist.
func (service *Service) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	exists, err := service.posts.Exists(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("Post")
	}
	return service.repo.ListByPost(ctx, postID, limit, offset)
}

// ListAllComments returns comments across every post (moderation view).
func (service *Service) ListAllComments(ctx context.Context, limit, offset int) ([]*Comment, int, error) {
	return service.repo.ListAll(ctx, limit, offset)
}

// CountComments returns the total number of comments.
func (service *Service) CountComments(ctx context.Context) (int, error) {
	return service.repo.Count(ctx)
}

/*
UpdateComment replaces a comment's content.

Description: Resolves the comment (NotFound if absent), asks the policy
engine whether the principal may update it (owner or admin), then persists.

Returns:
  - *Comment: The updated comment
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) UpdateComment(ctx context.Context, principal *authz.Principal, id, content string) (*Comment, error) {
	comment, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, err
	}

	decision := authz.Decide(principal, authz.ActionUpdateComment, &authz.Resource{ID: comment.ID, OwnerID: comment.UserID})
	if !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, content).
		MaxLen(FieldContent, content, 2000)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := service.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.String("comment_id", comment.ID))

	return service.repo.FindByID(ctx, comment.ID)
}

/*
DeleteComment removes a single comment.

Description: Resolves the comment, evaluates policy (owner or admin), then
deletes.

Returns:
  - error: NotFound, Forbidden, or persistence failures
*/
func (service *Service) DeleteComment(ctx context.Context, principal *authz.Principal, id string) error {
	comment, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Comment")
		}
		return err
	}

	decision := authz.Decide(principal, authz.ActionDeleteComment, &authz.Resource{ID: comment.ID, OwnerID: comment.UserID})
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}

	if err := service.repo.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", comment.PostID),
	)

	return nil
}
