// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package category

import "context"

// Repository defines the persistence contract for categories.
type Repository interface {
	// Create persists a new category. A name or slug collision surfaces as
	// a Conflict.
	Create(ctx context.Context, category *Category) error

	// FindByID loads a category by primary key.
	// Returns apperr.NotFound if no such category exists.
	FindByID(ctx context.Context, id string) (*Category, error)

	// FindBySlug loads a category by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// List returns all categories ordered by name.
	List(ctx context.Context) ([]*Category, error)

	// Update persists changes to an existing category.
	Update(ctx context.Context, category *Category) error

	// Delete removes a category. Referencing posts block the delete with
	// a Conflict via the foreign key.
	Delete(ctx context.Context, id string) error
}
