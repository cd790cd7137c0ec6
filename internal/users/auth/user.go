// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package auth implements identity: registration, login, refresh-token
sessions, and the [User] entity shared by the account and admin domains.

# Core Responsibility

  - Identity: Defines the [User] entity with its role and credentials.
  - Credentials: Passwords are stored as bcrypt hashes, never in clear.
  - Sessions: Login issues a short-lived JWT access token plus an opaque
    refresh token; refresh tokens are stored hashed with a TTL and rotated
    on every use.

# Security

The password hash never leaves the server: the JSON tag on PasswordHash
excludes it from every response, and login failures return one generic
message regardless of whether the email or the password was wrong.
*/
package auth

import (
	"time"

	"github.com/lethanhan/inkpress/internal/platform/sec"
)

// User represents a registered account.
type User struct {
	ID           string       `json:"id"` // UUIDv7
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Bio          string       `json:"bio,omitempty"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session represents one refresh-token session.
//
// Only the SHA-256 hash of the opaque token is stored; possession of the
// session record alone cannot be replayed as a token.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldBio      = "bio"
	FieldAvatar   = "avatar"
)
