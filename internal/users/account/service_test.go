// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/internal/users/account"
	"github.com/lethanhan/inkpress/internal/users/auth"
	"github.com/lethanhan/inkpress/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	users map[string]*auth.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*auth.User)}
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeRepository) Update(_ context.Context, u *auth.User) error {
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

// # Helpers

func newService(repo *fakeRepository) *account.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repo, logger)
}

func seedUser(repo *fakeRepository, id, email string) *auth.User {
	hash, _ := sec.HashPassword("original-pass")
	u := &auth.User{
		ID:           id,
		Name:         "Alice",
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleUser,
	}
	repo.users[id] = u
	return u
}

// # Profile Updates

func TestUpdateProfile(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		repo := newFakeRepository()
		seedUser(repo, "user-1", "alice@example.com")
		service := newService(repo)

		updated, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateInput{
			Bio: pointer.To("Writes about Go"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Writes about Go", updated.Bio)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("password hash is untouched when password is absent", func(t *testing.T) {
		repo := newFakeRepository()
		seedUser(repo, "user-1", "alice@example.com")
		originalHash := repo.users["user-1"].PasswordHash
		service := newService(repo)

		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateInput{
			Name: pointer.To("Alice Cooper"),
		})
		require.NoError(t, err)

		assert.Equal(t, originalHash, repo.users["user-1"].PasswordHash)
	})

	t.Run("password is re-hashed when provided", func(t *testing.T) {
		repo := newFakeRepository()
		seedUser(repo, "user-1", "alice@example.com")
		originalHash := repo.users["user-1"].PasswordHash
		service := newService(repo)

		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateInput{
			Password: pointer.To("brand-new-pass"),
		})
		require.NoError(t, err)

		stored := repo.users["user-1"].PasswordHash
		assert.NotEqual(t, originalHash, stored)
		assert.True(t, sec.CheckPasswordHash("brand-new-pass", stored))
	})

	t.Run("taking another user's email conflicts", func(t *testing.T) {
		repo := newFakeRepository()
		seedUser(repo, "user-1", "alice@example.com")
		seedUser(repo, "user-2", "bob@example.com")
		service := newService(repo)

		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateInput{
			Email: pointer.To("bob@example.com"),
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("re-submitting one's own email is fine", func(t *testing.T) {
		repo := newFakeRepository()
		seedUser(repo, "user-1", "alice@example.com")
		service := newService(repo)

		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateInput{
			Email: pointer.To("alice@example.com"),
		})
		require.NoError(t, err)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.UpdateProfile(context.Background(), "missing", account.UpdateInput{
			Name: pointer.To("Ghost"),
		})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("rejects a short replacement password", func(t *testing.T) {
		repo := newFakeRepository()
		seedUser(repo, "user-1", "alice@example.com")
		service := newService(repo)

		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateInput{
			Password: pointer.To("short"),
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}
