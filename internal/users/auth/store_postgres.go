// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lethanhan/inkpress/internal/platform/database/schema"
	"github.com/lethanhan/inkpress/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [UserRepository] interface using pgx.
// The account and admin domains share this store through their own narrow
// interfaces.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed user store.
func NewPostgresRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresRepository{pool: pool}
}

func selectClause() string {
	return fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s",
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.Bio, schema.UserAccount.AvatarURL,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
	)
}

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	user := &User{}
	var bio, avatarURL *string

	err := row.Scan(
		&user.ID, &user.Name, &user.Email,
		&user.PasswordHash, &user.Role,
		&bio, &avatarURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bio != nil {
		user.Bio = *bio
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	return user, nil
}

// Create persists a new user row. The unique index on email turns duplicate
// registrations into a Conflict.
func (repository *postgresRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.Bio, schema.UserAccount.AvatarURL,
	)

	_, err := repository.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email,
		user.PasswordHash, user.Role,
		user.Bio, user.AvatarURL,
	)
	return dberr.Wrap(err, "user_create")
}

// FindByID retrieves a user by primary key.
func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := selectClause() + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "user_find_by_id")
	}
	return user, nil
}

// FindByEmail retrieves a user by email address.
func (repository *postgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := selectClause() + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "user_find_by_email")
	}
	return user, nil
}

/*
List returns users newest-first with the total count.

Description: Uses COUNT(*) OVER() to retrieve the total without a second
query.
*/
func (repository *postgresRepository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) OVER() AS total_count,
			%s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.Bio, schema.UserAccount.AvatarURL,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.CreatedAt, schema.UserAccount.ID,
	)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "user_list")
	}
	defer rows.Close()

	var users []*User
	var totalCount int

	for rows.Next() {
		user := &User{}
		var bio, avatarURL *string

		err := rows.Scan(
			&totalCount,
			&user.ID, &user.Name, &user.Email,
			&user.PasswordHash, &user.Role,
			&bio, &avatarURL,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "user_list_scan")
		}

		if bio != nil {
			user.Bio = *bio
		}
		if avatarURL != nil {
			user.AvatarURL = *avatarURL
		}

		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "user_list_rows")
	}

	return users, totalCount, nil
}

// ListRecent returns the most recently registered users.
func (repository *postgresRepository) ListRecent(ctx context.Context, limit int) ([]*User, error) {
	users, _, err := repository.List(ctx, limit, 0)
	return users, err
}

// Count returns the total number of users.
func (repository *postgresRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.UserAccount.Table)

	var count int
	if err := repository.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "user_count")
	}
	return count, nil
}

// Update persists changes to an existing user row, including the password
// hash. Callers decide whether the hash changed; the store writes what it
// gets.
func (repository *postgresRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $7
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.Role, schema.UserAccount.Bio, schema.UserAccount.AvatarURL,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		user.Name, user.Email, user.PasswordHash,
		user.Role, user.Bio, user.AvatarURL,
		user.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "user_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes a user row. Content referencing the user blocks the delete
// through foreign keys, surfaced as a Conflict.
func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.UserAccount.Table, schema.UserAccount.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "user_delete")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
