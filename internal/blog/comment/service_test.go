// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhan/inkpress/internal/blog/comment"
	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/authz"
	"github.com/lethanhan/inkpress/internal/platform/sec"
)

// # Test Doubles

type fakeRepository struct {
	comments map[string]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: make(map[string]*comment.Comment)}
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	clone := *c
	f.comments[c.ID] = &clone
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) ListByPost(_ context.Context, postID string, _, _ int) ([]*comment.Comment, int, error) {
	var out []*comment.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) ListAll(_ context.Context, _, _ int) ([]*comment.Comment, int, error) {
	var out []*comment.Comment
	for _, c := range f.comments {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Count(_ context.Context) (int, error) {
	return len(f.comments), nil
}

func (f *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	clone := *c
	f.comments[c.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeRepository) DeleteByPost(_ context.Context, postID string) (int64, error) {
	var removed int64
	for id, c := range f.comments {
		if c.PostID == postID {
			delete(f.comments, id)
			removed++
		}
	}
	return removed, nil
}

// fakePosts reports existence from a fixed set of post ids.
type fakePosts struct {
	existing map[string]bool
}

func (f *fakePosts) Exists(_ context.Context, id string) (bool, error) {
	return f.existing[id], nil
}

// # Helpers

func newService(repo *fakeRepository, posts *fakePosts) *comment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return comment.NewService(repo, posts, logger)
}

func commenter() *authz.Principal {
	return &authz.Principal{ID: "user-commenter", Role: sec.RoleUser}
}

func stranger() *authz.Principal {
	return &authz.Principal{ID: "user-stranger", Role: sec.RoleUser}
}

func admin() *authz.Principal {
	return &authz.Principal{ID: "user-admin", Role: sec.RoleAdmin}
}

func seedComment(repo *fakeRepository, id string) *comment.Comment {
	c := &comment.Comment{
		ID:      id,
		PostID:  "post-1",
		UserID:  "user-commenter",
		Content: "Original content",
	}
	repo.comments[id] = c
	return c
}

// # Creation

func TestCreateComment(t *testing.T) {
	t.Run("persists against an existing post", func(t *testing.T) {
		repo := newFakeRepository()
		posts := &fakePosts{existing: map[string]bool{"post-1": true}}
		service := newService(repo, posts)

		created, err := service.CreateComment(context.Background(), commenter(), "post-1", "Nice read")
		require.NoError(t, err)

		assert.Equal(t, "post-1", created.PostID)
		assert.Equal(t, "user-commenter", created.UserID)
	})

	t.Run("commenting on a missing post is not found", func(t *testing.T) {
		service := newService(newFakeRepository(), &fakePosts{existing: map[string]bool{}})

		_, err := service.CreateComment(context.Background(), commenter(), "missing", "Nice read")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("rejects empty content", func(t *testing.T) {
		posts := &fakePosts{existing: map[string]bool{"post-1": true}}
		service := newService(newFakeRepository(), posts)

		_, err := service.CreateComment(context.Background(), commenter(), "post-1", "")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		posts := &fakePosts{existing: map[string]bool{"post-1": true}}
		service := newService(newFakeRepository(), posts)

		_, err := service.CreateComment(context.Background(), nil, "post-1", "Nice read")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}

// # Mutation Policy

func TestUpdateComment(t *testing.T) {
	t.Run("owner may update", func(t *testing.T) {
		repo := newFakeRepository()
		seedComment(repo, "comment-1")
		service := newService(repo, &fakePosts{})

		updated, err := service.UpdateComment(context.Background(), commenter(), "comment-1", "Edited")
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Content)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := newFakeRepository()
		seedComment(repo, "comment-1")
		service := newService(repo, &fakePosts{})

		_, err := service.UpdateComment(context.Background(), stranger(), "comment-1", "Edited")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.Equal(t, "Original content", repo.comments["comment-1"].Content)
	})

	t.Run("admin may update another user's comment", func(t *testing.T) {
		repo := newFakeRepository()
		seedComment(repo, "comment-1")
		service := newService(repo, &fakePosts{})

		updated, err := service.UpdateComment(context.Background(), admin(), "comment-1", "Moderated")
		require.NoError(t, err)
		assert.Equal(t, "Moderated", updated.Content)
	})

	t.Run("missing comment is not found before policy runs", func(t *testing.T) {
		service := newService(newFakeRepository(), &fakePosts{})

		_, err := service.UpdateComment(context.Background(), stranger(), "missing", "Edited")
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("owner may delete", func(t *testing.T) {
		repo := newFakeRepository()
		seedComment(repo, "comment-1")
		service := newService(repo, &fakePosts{})

		err := service.DeleteComment(context.Background(), commenter(), "comment-1")
		require.NoError(t, err)
		assert.NotContains(t, repo.comments, "comment-1")
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := newFakeRepository()
		seedComment(repo, "comment-1")
		service := newService(repo, &fakePosts{})

		err := service.DeleteComment(context.Background(), stranger(), "comment-1")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
		assert.Contains(t, repo.comments, "comment-1")
	})

	t.Run("admin may delete another user's comment", func(t *testing.T) {
		repo := newFakeRepository()
		seedComment(repo, "comment-1")
		service := newService(repo, &fakePosts{})

		err := service.DeleteComment(context.Background(), admin(), "comment-1")
		require.NoError(t, err)
		assert.NotContains(t, repo.comments, "comment-1")
	})
}

// # Listing

func TestListByPost(t *testing.T) {
	t.Run("missing post is not found", func(t *testing.T) {
		service := newService(newFakeRepository(), &fakePosts{existing: map[string]bool{}})

		_, _, err := service.ListByPost(context.Background(), "missing", 20, 0)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("returns only the post's comments", func(t *testing.T) {
		repo := newFakeRepository()
		seedComment(repo, "comment-1")
		repo.comments["comment-2"] = &comment.Comment{ID: "comment-2", PostID: "post-2", UserID: "user-x", Content: "Other"}
		posts := &fakePosts{existing: map[string]bool{"post-1": true}}
		service := newService(repo, posts)

		comments, total, err := service.ListByPost(context.Background(), "post-1", 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, comments, 1)
		assert.Equal(t, "comment-1", comments[0].ID)
	})
}
