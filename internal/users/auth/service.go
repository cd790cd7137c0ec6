// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/lethanhan/inkpress/internal/platform/apperr"
	"github.com/lethanhan/inkpress/internal/platform/constants"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/internal/platform/validate"
	"github.com/lethanhan/inkpress/pkg/uuid"
)

// refreshTokenBytes is the entropy of the opaque refresh token.
const refreshTokenBytes = 32

// TokenProvider issues signed access tokens. Satisfied by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error)
}

// # Service Layer

// Service orchestrates registration, login, and session lifecycle.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// TokenPair bundles the two credentials issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is the outcome of a successful login or refresh.
type AuthResult struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register creates a new user account with the default role.

Description: The email must be unused; registering an already-registered
email is a Conflict. The password is bcrypt-hashed before it touches
storage. Self-registration always yields a regular user — admin accounts
are created only through the admin surface.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *User: The created account
  - error: Validation, Conflict, or persistence failures
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		MaxLen(FieldPassword, input.Password, 72)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         sec.RoleUser,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
	)

	return service.users.FindByID(ctx, user.ID)
}

/*
Login verifies credentials and opens a session.

Description: A wrong email and a wrong password produce the same generic
Unauthorized message, so login failures leak nothing about which accounts
exist. On success it issues a short-lived JWT access token and an opaque
refresh token whose hash is stored with a TTL.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string
  - userAgent: string (session metadata)
  - ipAddress: string (session metadata)

Returns:
  - *AuthResult: User plus token pair
  - error: Unauthorized on bad credentials, otherwise persistence failures
*/
func (service *Service) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*AuthResult, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	tokens, err := service.issueSession(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return &AuthResult{User: user, Tokens: tokens}, nil
}

/*
RefreshSession exchanges a live refresh token for a fresh token pair.

Description: The presented token is hashed and looked up; unknown or
expired hashes are Unauthorized. Rotation is strict — the old session is
revoked before the new pair is issued, so a refresh token works exactly
once.

Returns:
  - *AuthResult: User plus rotated token pair
  - error: Unauthorized on invalid sessions, otherwise persistence failures
*/
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*AuthResult, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessions.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired session")
		}
		return nil, err
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			// Account deleted since login; the session is dead too.
			_ = service.sessions.Revoke(ctx, tokenHash)
			return nil, apperr.Unauthorized("Invalid or expired session")
		}
		return nil, err
	}

	if err := service.sessions.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}

	tokens, err := service.issueSession(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("session_refreshed", slog.String("user_id", user.ID))

	return &AuthResult{User: user, Tokens: tokens}, nil
}

/*
Logout revokes a refresh-token session.

Description: Idempotent — logging out with an unknown or already-revoked
token succeeds silently. The access token remains valid until its short
expiry; only the refresh chain is cut.
*/
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.sessions.Revoke(ctx, sec.HashToken(refreshToken))
}

// issueSession mints a token pair and stores the refresh session.
func (service *Service) issueSession(ctx context.Context, user *User, userAgent, ipAddress string) (TokenPair, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Name, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}

	refreshToken, err := sec.GenerateSecureToken(refreshTokenBytes)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: time.Now().Add(constants.RefreshTokenTTL),
		CreatedAt: time.Now(),
	}

	if err := service.sessions.Create(ctx, session); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
