// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package account implements profile self-service: the authenticated user
reading and updating their own account.

Ownership is implicit here — the routes operate on the caller's own id, so
no policy evaluation is needed. Cross-user management lives in the admin
domain.
*/
package account

import (
	"context"
	"log/slog"

	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/internal/platform/validate"
	"github.com/lethanhan/inkpress/internal/users/auth"
)

// Repository is the narrow slice of the user store this domain needs.
// Satisfied by the auth postgres repository.
type Repository interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	Update(ctx context.Context, user *auth.User) error
}

// # Service Layer

// Service orchestrates profile reads and updates.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetProfile returns the caller's own account.
func (service *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return user, nil
}

// UpdateInput defines the mutable subset of profile fields.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name      *string
	Email     *string
	Bio       *string
	AvatarURL *string
	Password  *string
}

/*
UpdateProfile applies a partial update to the caller's own account.

Description: The password is re-hashed ONLY when the input carries one;
edits that leave the password field out keep the stored hash byte-for-byte,
so a profile rename can never silently invalidate the credential. Changing
the email to one already registered is a Conflict.

Parameters:
  - ctx: context.Context
  - userID: string (the caller's own id)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, validation, Conflict, or persistence failures
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateInput) (*auth.User, error) {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		if _, err := service.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, apperr.Conflict("Email is already registered")
		} else if !apperr.IsNotFound(err) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldName, user.Name).
		MaxLen(auth.FieldName, user.Name, 100).
		Required(auth.FieldEmail, user.Email).
		Email(auth.FieldEmail, user.Email).
		MaxLen(auth.FieldBio, user.Bio, 500)

	if input.Password != nil {
		validator.MinLen(auth.FieldPassword, *input.Password, 8).
			MaxLen(auth.FieldPassword, *input.Password, 72)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Re-hash only when the password actually changed.
	if input.Password != nil {
		passwordHash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		user.PasswordHash = passwordHash
	}

	if err := service.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated",
		slog.String("user_id", user.ID),
		slog.Bool("password_changed", input.Password != nil),
	)

	return service.repo.FindByID(ctx, user.ID)
}
