// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package admin

import (
	"context"
	"log/slog"

	"github.com/lethanhan/inkpress/internal/blog/comment"
	"github.com/lethanhan/inkpress/internal/blog/post"
	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/authz"
	"github.com/lethanhan/inkpress/internal/platform/constants"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/internal/platform/validate"
	"github.com/lethanhan/inkpress/internal/users/auth"
	"github.com/lethanhan/inkpress/pkg/uuid"
)

// # Service Layer

// Service orchestrates the administrative operations.
type Service struct {
	users    UserRepository
	posts    PostModerator
	comments CommentModerator
	logger   *slog.Logger
}

// NewService constructs a new admin [Service].
func NewService(users UserRepository, posts PostModerator, comments CommentModerator, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

// # User Management

// ListUsers returns users newest-first with the total count.
func (service *Service) ListUsers(ctx context.Context, principal *authz.Principal, limit, offset int) ([]*auth.User, int, error) {
	decision := authz.Decide(principal, authz.ActionListUsers, nil)
	if !decision.Allowed {
		return nil, 0, apperr.Forbidden(decision.Reason)
	}
	return service.users.List(ctx, limit, offset)
}

// GetUser returns one account by id.
func (service *Service) GetUser(ctx context.Context, principal *authz.Principal, id string) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	decision := authz.Decide(principal, authz.ActionReadUser, &authz.Resource{ID: user.ID, OwnerID: user.ID})
	if !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}
	return user, nil
}

// UpdateUserInput defines the fields an admin may change on any account.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Name *string
	Bio  *string
	Role *string
}

/*
UpdateUser applies an administrative update to any account.

Description: Role changes are validated against the closed role set. The
password and email are out of scope here — those stay self-service.

Returns:
  - *auth.User: The updated account
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) UpdateUser(ctx context.Context, principal *authz.Principal, id string, input UpdateUserInput) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	decision := authz.Decide(principal, authz.ActionUpdateUser, &authz.Resource{ID: user.ID, OwnerID: user.ID})
	if !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		validator := &validate.Validator{}
		validator.Custom("role", !role.IsValid(), "Unknown role")
		if err := validator.Err(); err != nil {
			return nil, err
		}
		user.Role = role
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldName, user.Name).
		MaxLen(auth.FieldName, user.Name, 100).
		MaxLen(auth.FieldBio, user.Bio, 500)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.users.Update(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("admin_user_updated",
		slog.String("user_id", user.ID),
		slog.String("admin_id", principal.ID),
	)

	return service.users.FindByID(ctx, user.ID)
}

/*
DeleteUser removes an account.

Description: The policy engine's self-deletion guard makes this impossible
to turn on one's own account, admin or not — the platform can never admin
itself into having zero administrators by accident.

Returns:
  - error: NotFound, Forbidden (including the self-deletion denial), or
    persistence failures
*/
func (service *Service) DeleteUser(ctx context.Context, principal *authz.Principal, id string) error {
	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return err
	}

	decision := authz.Decide(principal, authz.ActionDeleteUser, &authz.Resource{ID: user.ID, OwnerID: user.ID})
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}

	if err := service.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	service.logger.Info("admin_user_deleted",
		slog.String("user_id", user.ID),
		slog.String("admin_id", principal.ID),
	)

	return nil
}

// CreateAdminInput holds the data required to create an admin account.
type CreateAdminInput struct {
	Name     string
	Email    string
	Password string
}

/*
CreateAdmin creates a new account with the admin role.

Description: This is the only path that mints an admin; self-registration
always yields a regular user.

Returns:
  - *auth.User: The created admin account
  - error: Forbidden, validation, Conflict, or persistence failures
*/
func (service *Service) CreateAdmin(ctx context.Context, principal *authz.Principal, input CreateAdminInput) (*auth.User, error) {
	decision := authz.Decide(principal, authz.ActionCreateUser, nil)
	if !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldName, input.Name).
		MaxLen(auth.FieldName, input.Name, 100).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, 8).
		MaxLen(auth.FieldPassword, input.Password, 72)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &auth.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         sec.RoleAdmin,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("admin_account_created",
		slog.String("user_id", user.ID),
		slog.String("admin_id", principal.ID),
	)

	return service.users.FindByID(ctx, user.ID)
}

// # Moderation

// ListPosts returns all posts for the moderation view.
func (service *Service) ListPosts(ctx context.Context, limit, offset int) ([]*post.Post, int, error) {
	return service.posts.ListPosts(ctx, post.Filter{}, limit, offset)
}

// DeletePost removes any post through the post service, cascade included.
func (service *Service) DeletePost(ctx context.Context, principal *authz.Principal, id string) error {
	return service.posts.DeletePost(ctx, principal, id)
}

// ListComments returns all comments for the moderation view.
func (service *Service) ListComments(ctx context.Context, limit, offset int) ([]*comment.Comment, int, error) {
	return service.comments.ListAllComments(ctx, limit, offset)
}

// DeleteComment removes any comment through the comment service.
func (service *Service) DeleteComment(ctx context.Context, principal *authz.Principal, id string) error {
	return service.comments.DeleteComment(ctx, principal, id)
}

// # Dashboard

/*
Stats aggregates the dashboard payload: platform-wide counts plus the most
recent users and posts.

Returns:
  - *DashboardStats: Counts and recent-activity feeds
  - error: Retrieval errors from any collaborator
*/
func (service *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	userCount, err := service.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	postCount, err := service.posts.CountPosts(ctx)
	if err != nil {
		return nil, err
	}
	commentCount, err := service.comments.CountComments(ctx)
	if err != nil {
		return nil, err
	}

	recentUsers, err := service.users.ListRecent(ctx, constants.DashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	recentPosts, err := service.posts.ListRecentPosts(ctx, constants.DashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Counts: DashboardCounts{
			Users:    userCount,
			Posts:    postCount,
			Comments: commentCount,
		},
		RecentUsers: recentUsers,
		RecentPosts: recentPosts,
	}, nil
}
