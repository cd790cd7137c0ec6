// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/internal/users/auth"
)

// # Test Doubles

type fakeUsers struct {
	users map[string]*auth.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*auth.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *auth.User) error {
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeUsers) List(_ context.Context, _, _ int) ([]*auth.User, int, error) {
	var out []*auth.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUsers) ListRecent(_ context.Context, limit int) ([]*auth.User, error) {
	out, _, _ := f.List(context.Background(), limit, 0)
	return out, nil
}

func (f *fakeUsers) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeUsers) Update(_ context.Context, u *auth.User) error {
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeSessions struct {
	sessions map[string]*auth.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*auth.Session)}
}

func (f *fakeSessions) Create(_ context.Context, s *auth.Session) error {
	clone := *s
	f.sessions[s.TokenHash] = &clone
	return nil
}

func (f *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	s, ok := f.sessions[tokenHash]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, apperr.NotFound("Session")
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSessions) Revoke(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

// fakeTokens issues predictable opaque access tokens.
type fakeTokens struct {
	issued int
}

func (f *fakeTokens) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	f.issued++
	return "access-token-for-" + userID, nil
}

// # Helpers

func newService(users *fakeUsers, sessions *fakeSessions) *auth.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(users, sessions, &fakeTokens{}, logger)
}

func register(t *testing.T, service *auth.Service, email string) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

// # Registration

func TestRegister(t *testing.T) {
	t.Run("creates a regular user with a hashed password", func(t *testing.T) {
		users := newFakeUsers()
		service := newService(users, newFakeSessions())

		created := register(t, service, "alice@example.com")

		assert.Equal(t, sec.RoleUser, created.Role)
		stored := users.users[created.ID]
		assert.NotEqual(t, "correct-horse", stored.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("correct-horse", stored.PasswordHash))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		service := newService(newFakeUsers(), newFakeSessions())
		register(t, service, "alice@example.com")

		_, err := service.Register(context.Background(), auth.RegisterInput{
			Name:     "Imposter",
			Email:    "alice@example.com",
			Password: "another-pass",
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		service := newService(newFakeUsers(), newFakeSessions())

		_, err := service.Register(context.Background(), auth.RegisterInput{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "short",
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

// # Login

func TestLogin(t *testing.T) {
	t.Run("valid credentials yield a token pair and a session", func(t *testing.T) {
		users := newFakeUsers()
		sessions := newFakeSessions()
		service := newService(users, sessions)
		registered := register(t, service, "alice@example.com")

		result, err := service.Login(context.Background(), "alice@example.com", "correct-horse", "ua", "127.0.0.1")
		require.NoError(t, err)

		assert.Equal(t, registered.ID, result.User.ID)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
		assert.Len(t, sessions.sessions, 1)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		service := newService(newFakeUsers(), newFakeSessions())
		register(t, service, "alice@example.com")

		_, badPassErr := service.Login(context.Background(), "alice@example.com", "wrong", "ua", "")
		_, badEmailErr := service.Login(context.Background(), "nobody@example.com", "correct-horse", "ua", "")

		require.Error(t, badPassErr)
		require.Error(t, badEmailErr)
		assert.Equal(t, badPassErr.Error(), badEmailErr.Error())
		assert.Equal(t, "UNAUTHORIZED", apperr.As(badPassErr).Code)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(badEmailErr).Code)
	})
}

// # Session Rotation

func TestRefreshSession(t *testing.T) {
	login := func(t *testing.T) (*auth.Service, *fakeSessions, string) {
		t.Helper()
		sessions := newFakeSessions()
		service := newService(newFakeUsers(), sessions)
		register(t, service, "alice@example.com")
		result, err := service.Login(context.Background(), "alice@example.com", "correct-horse", "ua", "")
		require.NoError(t, err)
		return service, sessions, result.Tokens.RefreshToken
	}

	t.Run("a refresh token works exactly once", func(t *testing.T) {
		service, _, refreshToken := login(t)

		first, err := service.RefreshSession(context.Background(), refreshToken, "ua", "")
		require.NoError(t, err)
		assert.NotEqual(t, refreshToken, first.Tokens.RefreshToken)

		_, err = service.RefreshSession(context.Background(), refreshToken, "ua", "")
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("rotation keeps exactly one live session", func(t *testing.T) {
		service, sessions, refreshToken := login(t)

		_, err := service.RefreshSession(context.Background(), refreshToken, "ua", "")
		require.NoError(t, err)
		assert.Len(t, sessions.sessions, 1)
	})

	t.Run("an unknown token is unauthorized", func(t *testing.T) {
		service, _, _ := login(t)

		_, err := service.RefreshSession(context.Background(), "made-up", "ua", "")
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}

// # Logout

func TestLogout(t *testing.T) {
	t.Run("revokes the session and is idempotent", func(t *testing.T) {
		sessions := newFakeSessions()
		service := newService(newFakeUsers(), sessions)
		register(t, service, "alice@example.com")
		result, err := service.Login(context.Background(), "alice@example.com", "correct-horse", "ua", "")
		require.NoError(t, err)

		require.NoError(t, service.Logout(context.Background(), result.Tokens.RefreshToken))
		assert.Empty(t, sessions.sessions)

		// Second logout with the same token still succeeds.
		require.NoError(t, service.Logout(context.Background(), result.Tokens.RefreshToken))
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		service := newService(newFakeUsers(), newFakeSessions())
		require.NoError(t, service.Logout(context.Background(), ""))
	})
}
