// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package auth

import "context"

// UserRepository defines the persistence contract for user accounts.
// It also backs the account (profile) and admin (user management) domains.
type UserRepository interface {
	// Create persists a new user. A duplicate email surfaces as a Conflict.
	Create(ctx context.Context, user *User) error

	// FindByID loads a user by primary key.
	// Returns apperr.NotFound if no such user exists.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail loads a user by email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List returns users newest-first with total count.
	List(ctx context.Context, limit, offset int) ([]*User, int, error)

	// ListRecent returns the most recently registered users.
	ListRecent(ctx context.Context, limit int) ([]*User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *User) error

	// Delete removes a user account.
	Delete(ctx context.Context, id string) error
}

// SessionRepository defines the volatile store for refresh-token sessions.
// Sessions expire on their own; Revoke only shortens that.
type SessionRepository interface {
	// Create stores a session keyed by its token hash until ExpiresAt.
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash loads a live session by token hash.
	// Returns apperr.NotFound for unknown or expired hashes.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke removes a session by token hash. Revoking an absent session
	// is not an error.
	Revoke(ctx context.Context, tokenHash string) error
}
