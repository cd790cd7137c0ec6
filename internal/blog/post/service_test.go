// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package post_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhan/inkpress/internal/blog/post"
	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/authz"
	"github.com/lethanhan/inkpress/internal/platform/sec"
)

// # Test Doubles

// fakeRepository is an in-memory post store used to exercise the service.
type fakeRepository struct {
	posts map[string]*post.Post
	likes map[string]map[string]bool

	updateErr error
	deleteErr error
	deleted   []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		posts: make(map[string]*post.Post),
		likes: make(map[string]map[string]bool),
	}
}

func (f *fakeRepository) Create(_ context.Context, p *post.Post) error {
	clone := *p
	f.posts[p.ID] = &clone
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	clone := *p
	clone.Likes = f.likeList(id)
	return &clone, nil
}

func (f *fakeRepository) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.posts[id]
	return ok, nil
}

func (f *fakeRepository) List(_ context.Context, filter post.Filter, _, _ int) ([]*post.Post, int, error) {
	var out []*post.Post
	for _, p := range f.posts {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepository) ListRecent(_ context.Context, limit int) ([]*post.Post, error) {
	out, _, _ := f.List(context.Background(), post.Filter{}, limit, 0)
	return out, nil
}

func (f *fakeRepository) Count(_ context.Context) (int, error) {
	return len(f.posts), nil
}

func (f *fakeRepository) Update(_ context.Context, p *post.Post) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	clone := *p
	f.posts[p.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	set, ok := f.likes[postID]
	if !ok {
		set = make(map[string]bool)
		f.likes[postID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (f *fakeRepository) ListLikes(_ context.Context, postID string) ([]string, error) {
	return f.likeList(postID), nil
}

func (f *fakeRepository) likeList(postID string) []string {
	out := []string{}
	for userID := range f.likes[postID] {
		out = append(out, userID)
	}
	return out
}

// fakePurger records cascade calls and can be told to fail.
type fakePurger struct {
	purged  []string
	removed int64
	err     error
}

func (f *fakePurger) DeleteByPost(_ context.Context, postID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.purged = append(f.purged, postID)
	return f.removed, nil
}

// # Helpers

func newService(repo *fakeRepository, purger *fakePurger) *post.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return post.NewService(repo, purger, logger)
}

func owner() *authz.Principal {
	return &authz.Principal{ID: "user-owner", Role: sec.RoleUser}
}

func stranger() *authz.Principal {
	return &authz.Principal{ID: "user-stranger", Role: sec.RoleUser}
}

func admin() *authz.Principal {
	return &authz.Principal{ID: "user-admin", Role: sec.RoleAdmin}
}

func seedPost(repo *fakeRepository, id string) *post.Post {
	p := &post.Post{
		ID:         id,
		Title:      "Original title",
		Content:    "Original content",
		CategoryID: "0192d3a0-0000-7000-8000-000000000001",
		AuthorID:   "user-owner",
	}
	repo.posts[id] = p
	return p
}

// # Publication

func TestCreatePost(t *testing.T) {
	t.Run("persists and assigns ownership to the principal", func(t *testing.T) {
		repo := newFakeRepository()
		service := newService(repo, &fakePurger{})

		created, err := service.CreatePost(context.Background(), owner(), post.CreateInput{
			Title:      "Hello",
			Content:    "World",
			CategoryID: "0192d3a0-0000-7000-8000-000000000001",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "user-owner", created.AuthorID)
		assert.Empty(t, created.Likes)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		service := newService(newFakeRepository(), &fakePurger{})

		_, err := service.CreatePost(context.Background(), nil, post.CreateInput{
			Title:      "Hello",
			Content:    "World",
			CategoryID: "0192d3a0-0000-7000-8000-000000000001",
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		service := newService(newFakeRepository(), &fakePurger{})

		_, err := service.CreatePost(context.Background(), owner(), post.CreateInput{})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

// # Retrieval

func TestListByAuthor(t *testing.T) {
	t.Run("returns only the author's posts", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		seedPost(repo, "post-2")
		other := seedPost(repo, "post-3")
		other.AuthorID = "user-stranger"
		service := newService(repo, &fakePurger{})

		posts, total, err := service.ListByAuthor(context.Background(), "user-owner", 10, 0)
		require.NoError(t, err)

		assert.Equal(t, 2, total)
		for _, p := range posts {
			assert.Equal(t, "user-owner", p.AuthorID)
		}
	})

	t.Run("unknown author yields an empty page", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		posts, total, err := service.ListByAuthor(context.Background(), "user-nobody", 10, 0)
		require.NoError(t, err)

		assert.Zero(t, total)
		assert.Empty(t, posts)
	})
}

// # Mutation Policy

func TestUpdatePost(t *testing.T) {
	newTitle := "Updated title"

	t.Run("owner may update", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		updated, err := service.UpdatePost(context.Background(), owner(), "post-1", post.UpdateInput{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("nil fields leave values unchanged", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		updated, err := service.UpdatePost(context.Background(), owner(), "post-1", post.UpdateInput{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Original content", updated.Content)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		_, err := service.UpdatePost(context.Background(), stranger(), "post-1", post.UpdateInput{Title: &newTitle})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.Equal(t, "Original title", repo.posts["post-1"].Title)
	})

	t.Run("admin may update another user's post", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		updated, err := service.UpdatePost(context.Background(), admin(), "post-1", post.UpdateInput{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("missing post is not found before policy runs", func(t *testing.T) {
		service := newService(newFakeRepository(), &fakePurger{})

		_, err := service.UpdatePost(context.Background(), stranger(), "missing", post.UpdateInput{Title: &newTitle})

		assert.True(t, apperr.IsNotFound(err), "absence resolves before authorization")
	})
}

// # Cascade Delete

func TestDeletePost(t *testing.T) {
	t.Run("removes comments before the post", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		purger := &fakePurger{removed: 3}
		service := newService(repo, purger)

		err := service.DeletePost(context.Background(), owner(), "post-1")
		require.NoError(t, err)

		assert.Equal(t, []string{"post-1"}, purger.purged)
		assert.Equal(t, []string{"post-1"}, repo.deleted)
	})

	t.Run("aborts when the comment purge fails", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		purger := &fakePurger{err: errors.New("purge failed")}
		service := newService(repo, purger)

		err := service.DeletePost(context.Background(), owner(), "post-1")
		require.Error(t, err)

		// The post must survive an aborted cascade.
		assert.Contains(t, repo.posts, "post-1")
		assert.Empty(t, repo.deleted)
	})

	t.Run("non-owner is forbidden and nothing is purged", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		purger := &fakePurger{}
		service := newService(repo, purger)

		err := service.DeletePost(context.Background(), stranger(), "post-1")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.Empty(t, purger.purged)
	})

	t.Run("admin may delete another user's post", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		err := service.DeletePost(context.Background(), admin(), "post-1")
		require.NoError(t, err)
		assert.NotContains(t, repo.posts, "post-1")
	})
}

// # Engagement

func TestToggleLike(t *testing.T) {
	t.Run("first toggle likes, second toggle unlikes", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		likes, err := service.ToggleLike(context.Background(), stranger(), "post-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"user-stranger"}, likes)

		likes, err = service.ToggleLike(context.Background(), stranger(), "post-1")
		require.NoError(t, err)
		assert.Empty(t, likes)
	})

	t.Run("toggles from distinct users accumulate", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		_, err := service.ToggleLike(context.Background(), owner(), "post-1")
		require.NoError(t, err)
		likes, err := service.ToggleLike(context.Background(), stranger(), "post-1")
		require.NoError(t, err)

		assert.Len(t, likes, 2)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		service := newService(newFakeRepository(), &fakePurger{})

		_, err := service.ToggleLike(context.Background(), owner(), "missing")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		repo := newFakeRepository()
		seedPost(repo, "post-1")
		service := newService(repo, &fakePurger{})

		_, err := service.ToggleLike(context.Background(), nil, "post-1")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}
