// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Repository Interfaces

// UserRepository persists accounts. Emails are matched case-insensitively.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// SessionRepository stores refresh sessions keyed by token hash.
type SessionRepository interface {
	Create(ctx context.Context, tokenHash string, session *Session, ttl time.Duration) error

	// Consume returns the session and removes it in one step, so a refresh
	// token can be redeemed at most once. A missing session is NOT_FOUND.
	Consume(ctx context.Context, tokenHash string) (*Session, error)

	Delete(ctx context.Context, tokenHash string) error
}
