// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
)

// MemoryUserRepository is an in-process [UserRepository].
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]User
	now   func() time.Time
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]User), now: time.Now}
}

func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Email is already registered")
		}
	}

	now := repository.now()
	user.CreatedAt, user.UpdatedAt = now, now
	repository.users[user.ID] = *user
	return nil
}

func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, apperr.NotFound(resourceName)
}

func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return &user, nil
}

func (repository *MemoryUserRepository) TouchLogin(_ context.Context, id string, at time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return apperr.NotFound(resourceName)
	}
	user.LastLoginAt = &at
	repository.users[id] = user
	return nil
}

// MemorySessionRepository is an in-process [SessionRepository]. Expiry is
// checked on read against the session's ExpiresAt.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]Session), now: time.Now}
}

func (repository *MemorySessionRepository) Create(_ context.Context, tokenHash string, session *Session, _ time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.sessions[tokenHash] = *session
	return nil
}

func (repository *MemorySessionRepository) Consume(_ context.Context, tokenHash string) (*Session, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	session, ok := repository.sessions[tokenHash]
	delete(repository.sessions, tokenHash)

	if !ok || !repository.now().Before(session.ExpiresAt) {
		return nil, apperr.NotFound("Session")
	}
	return &session, nil
}

func (repository *MemorySessionRepository) Delete(_ context.Context, tokenHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.sessions, tokenHash)
	return nil
}

// Len reports how many sessions are held.
func (repository *MemorySessionRepository) Len() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.sessions)
}
