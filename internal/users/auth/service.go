// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-shelf/internal/platform/sec"
	"github.com/taibuivan/yomira-shelf/internal/platform/validate"
	"github.com/taibuivan/yomira-shelf/pkg/uuid"
)

// TokenProvider signs access tokens. Implemented by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, email string, timeToLive time.Duration) (string, error)
}

// Service implements signup, login and session rotation.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
	ids      uuid.Generator
	now      func() time.Time

	storeTimeout time.Duration
}

// Option customises a [Service].
type Option func(*Service)

// WithStoreTimeout bounds the account and session store calls of each operation.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(service *Service) { service.storeTimeout = timeout }
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
		ids:      uuid.V7{},
		now:      time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Registration

// SignupInput holds the data required to open an account.
type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

/*
Signup validates, hashes and persists a new account.

Description: The display name defaults to the local part of the email.

Returns:
  - *User: the created account
  - error: VALIDATION_ERROR, CONFLICT (email taken)
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength).
		MaxLen(FieldDisplayName, input.DisplayName, MaxDisplayNameLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName, _, _ = strings.Cut(input.Email, "@")
	}

	user := &User{
		ID:           service.ids.NewID(),
		Email:        input.Email,
		DisplayName:  displayName,
		PasswordHash: hashedPassword,
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_signed_up", slog.String("user_id", user.ID))
	return user, nil
}

// # Sessions

// LoginInput carries credentials plus the client fingerprint stored on the session.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

/*
Login verifies credentials and issues an access token and a refresh session.

Returns:
  - *LoginSession: tokens and the signed-in user
  - error: UNAUTHORIZED for any credential mismatch, never revealing which part failed
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	user, err := service.users.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issue(ctx, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	now := service.now()
	if err := service.users.TouchLogin(ctx, user.ID, now); err != nil {
		service.logger.Warn("auth_touch_login_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Refresh redeems a refresh token for a new token pair.

Description: The presented session is consumed before the new one is issued,
so replaying a rotated token fails.
*/
func (service *Service) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Missing refresh token")
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	session, err := service.sessions.Consume(ctx, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, err
	}

	return service.issue(ctx, user, userAgent, ipAddress)
}

// Logout deletes the session behind refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	return service.sessions.Delete(ctx, sec.HashToken(refreshToken))
}

// Me returns the account behind an authenticated user id.
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	ctx, cancel := ctxutil.WithTimeout(ctx, service.storeTimeout)
	defer cancel()

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

func (service *Service) issue(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Email, AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_refresh_token_failed: %w", err))
	}

	now := service.now()
	session := &Session{
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(RefreshTokenTTL),
		CreatedAt: now,
	}

	if err := service.sessions.Create(ctx, sec.HashToken(refreshToken), session, RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		User:                  user,
	}, nil
}
