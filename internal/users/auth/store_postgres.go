// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/database/schema"
	"github.com/taibuivan/yomira-shelf/internal/platform/dberr"
)

const resourceName = "User"

// PostgresUserRepository implements [UserRepository] over users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

/*
Create inserts a new account.

Returns:
  - error: CONFLICT when the email is already registered
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email,
		schema.UserAccount.DisplayName, schema.UserAccount.PasswordHash,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query, user.ID, user.Email, user.DisplayName, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, resourceName, "create_user")
		if apperr.HasCode(wrapped, apperr.CodeConflict) {
			return apperr.Conflict("Email is already registered")
		}
		return wrapped
	}
	return nil
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email,
	)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_user_by_email")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_user_by_id")
	}
	return user, nil
}

// TouchLogin records the time of the latest successful login.
func (repository *PostgresUserRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, id, at)
	if err != nil {
		return dberr.Wrap(err, resourceName, "touch_login")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}
