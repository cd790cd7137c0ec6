// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/authz"
	"github.com/lethanhan/inkpress/internal/platform/validate"
	"github.com/lethanhan/inkpress/pkg/slug"
	"github.com/lethanhan/inkpress/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for categories.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new category [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
CreateCategory validates and persists a new category with a derived slug.

Description: Admin-only, decided by the policy engine. The slug is derived
from the name; callers cannot supply one. A duplicate name or slug surfaces
as a Conflict from the store.

Parameters:
  - ctx: context.Context
  - principal: *authz.Principal
  - name: string
  - description: string

Returns:
  - *Category: The created category
  - error: Forbidden, validation, Conflict, or persistence failures
*/
func (service *Service) CreateCategory(ctx context.Context, principal *authz.Principal, name, description string) (*Category, error) {
	decision := authz.Decide(principal, authz.ActionCreateCategory, nil)
	if !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, 100).
		MaxLen(FieldDescription, description, 500)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := &Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug.From(name),
		Description: description,
	}

	if err := service.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return service.repo.FindByID(ctx, category.ID)
}

// GetCategory retrieves a single category by id. Public read.
func (service *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	category, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Category")
		}
		return nil, err
	}
	return category, nil
}

// GetCategoryBySlug retrieves a single category by its URL slug. Public read.
func (service *Service) GetCategoryBySlug(ctx context.Context, categorySlug string) (*Category, error) {
	category, err := service.repo.FindBySlug(ctx, categorySlug)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Category")
		}
		return nil, err
	}
	return category, nil
}

// ListCategories returns every category ordered by name. Public read.
func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return service.repo.List(ctx)
}

// UpdateInput defines the mutable subset of category fields.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
}

/*
UpdateCategory applies a partial update to a category.

Description: Admin-only. The slug is recomputed from the name ONLY when the
name field is present in the input; edits that leave the name alone keep the
slug stable even if the historic slug would not match a fresh derivation.

Returns:
  - *Category: The updated category
  - error: NotFound, Forbidden, validation, Conflict, or persistence failures
*/
func (service *Service) UpdateCategory(ctx context.Context, principal *authz.Principal, id string, input UpdateInput) (*Category, error) {
	category, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Category")
		}
		return nil, err
	}

	decision := authz.Decide(principal, authz.ActionUpdateCategory, &authz.Resource{ID: category.ID})
	if !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}

	// The slug is recomputed only when the name actually changes, so a
	// resubmitted identical name keeps a historic slug intact.
	if input.Name != nil && *input.Name != category.Name {
		category.Name = *input.Name
		category.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).
		MaxLen(FieldName, category.Name, 100).
		MaxLen(FieldDescription, category.Description, 500)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_updated",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return service.repo.FindByID(ctx, category.ID)
}

/*
DeleteCategory removes a category.

Description: Admin-only. Categories still referenced by posts are protected
by the foreign key, which the store surfaces as a Conflict.

Returns:
  - error: NotFound, Forbidden, Conflict, or persistence failures
*/
func (service *Service) DeleteCategory(ctx context.Context, principal *authz.Principal, id string) error {
	category, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Category")
		}
		return err
	}

	decision := authz.Decide(principal, authz.ActionDeleteCategory, &authz.Resource{ID: category.ID})
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}

	if err := service.repo.Delete(ctx, category.ID); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("category_id", category.ID))

	return nil
}
