// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhan/inkpress/internal/blog/category"
	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/authz"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	categories map[string]*category.Category
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{categories: make(map[string]*category.Category)}
}

func (f *fakeRepository) Create(_ context.Context, c *category.Category) error {
	for _, existing := range f.categories {
		if existing.Name == c.Name || existing.Slug == c.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}
	clone := *c
	f.categories[c.ID] = &clone
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*category.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeRepository) List(_ context.Context) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, c *category.Category) error {
	clone := *c
	f.categories[c.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.categories, id)
	return nil
}

// # Helpers

func newService(repo *fakeRepository) *category.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.NewService(repo, logger)
}

func admin() *authz.Principal {
	return &authz.Principal{ID: "user-admin", Role: sec.RoleAdmin}
}

func regular() *authz.Principal {
	return &authz.Principal{ID: "user-regular", Role: sec.RoleUser}
}

// # Creation

func TestCreateCategory(t *testing.T) {
	t.Run("derives the slug from the name", func(t *testing.T) {
		service := newService(newFakeRepository())

		created, err := service.CreateCategory(context.Background(), admin(), "Node.js & Friends!", "JS runtime talk")
		require.NoError(t, err)

		assert.Equal(t, "node-js---friends-", created.Slug)
	})

	t.Run("regular users may not create", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.CreateCategory(context.Background(), regular(), "Go", "")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("anonymous callers may not create", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.CreateCategory(context.Background(), nil, "Go", "")
		assert.True(t, apperr.IsForbidden(err))
	})

	t.Run("duplicate names conflict", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.CreateCategory(context.Background(), admin(), "Go", "")
		require.NoError(t, err)

		_, err = service.CreateCategory(context.Background(), admin(), "Go", "")
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.CreateCategory(context.Background(), admin(), "", "")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

// # Slug Stability

func TestUpdateCategory(t *testing.T) {
	seed := func(t *testing.T) (*category.Service, *category.Category) {
		t.Helper()
		service := newService(newFakeRepository())
		created, err := service.CreateCategory(context.Background(), admin(), "Tech Tips", "")
		require.NoError(t, err)
		return service, created
	}

	t.Run("name change recomputes the slug", func(t *testing.T) {
		service, created := seed(t)

		updated, err := service.UpdateCategory(context.Background(), admin(), created.ID, category.UpdateInput{
			Name: pointer.To("Career Advice"),
		})
		require.NoError(t, err)

		assert.Equal(t, "career-advice", updated.Slug)
	})

	t.Run("resubmitting the same name keeps a historic slug", func(t *testing.T) {
		repo := newFakeRepository()
		service := newService(repo)

		// Seed a category whose slug predates the current derivation rule.
		repo.categories["cat-legacy"] = &category.Category{
			ID:   "cat-legacy",
			Name: "Tech Tips",
			Slug: "legacy-tech",
		}

		updated, err := service.UpdateCategory(context.Background(), admin(), "cat-legacy", category.UpdateInput{
			Name: pointer.To("Tech Tips"),
		})
		require.NoError(t, err)

		assert.Equal(t, "legacy-tech", updated.Slug)
	})

	t.Run("description-only change keeps the slug", func(t *testing.T) {
		service, created := seed(t)

		updated, err := service.UpdateCategory(context.Background(), admin(), created.ID, category.UpdateInput{
			Description: pointer.To("All about tech"),
		})
		require.NoError(t, err)

		assert.Equal(t, "tech-tips", updated.Slug)
		assert.Equal(t, "All about tech", updated.Description)
	})

	t.Run("regular users may not update", func(t *testing.T) {
		service, created := seed(t)

		_, err := service.UpdateCategory(context.Background(), regular(), created.ID, category.UpdateInput{
			Name: pointer.To("Hijacked"),
		})
		assert.True(t, apperr.IsForbidden(err))
	})

	t.Run("missing category is not found", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.UpdateCategory(context.Background(), admin(), "missing", category.UpdateInput{
			Name: pointer.To("Anything"),
		})
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("admin may delete", func(t *testing.T) {
		repo := newFakeRepository()
		service := newService(repo)
		created, err := service.CreateCategory(context.Background(), admin(), "Ephemeral", "")
		require.NoError(t, err)

		require.NoError(t, service.DeleteCategory(context.Background(), admin(), created.ID))
		assert.NotContains(t, repo.categories, created.ID)
	})

	t.Run("regular users may not delete", func(t *testing.T) {
		service := newService(newFakeRepository())
		created, err := service.CreateCategory(context.Background(), admin(), "Sticky", "")
		require.NoError(t, err)

		err = service.DeleteCategory(context.Background(), regular(), created.ID)
		assert.True(t, apperr.IsForbidden(err))
	})
}

// # Lookup

func TestGetCategoryBySlug(t *testing.T) {
	service := newService(newFakeRepository())
	created, err := service.CreateCategory(context.Background(), admin(), "Deep Dives", "")
	require.NoError(t, err)

	found, err := service.GetCategoryBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetCategoryBySlug(context.Background(), "no-such-slug")
	assert.True(t, apperr.IsNotFound(err))
}
