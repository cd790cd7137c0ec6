// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lethanhan/inkpress/internal/platform/database/schema"
	"github.com/lethanhan/inkpress/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
// It also satisfies the post domain's cascade purger contract through
// DeleteByPost.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// selectClause is the shared projection for hydrated comment reads: the
// comment row joined with its commenter reference.
func selectClause() string {
	return fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			u.%s, u.%s, u.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
	`,
		schema.BlogComment.ID, schema.BlogComment.PostID, schema.BlogComment.UserID,
		schema.BlogComment.Content, schema.BlogComment.CreatedAt, schema.BlogComment.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.AvatarURL,
		schema.BlogComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.BlogComment.UserID,
	)
}

// scanComment maps one joined row into a hydrated [Comment].
func scanComment(row interface{ Scan(dest ...any) error }) (*Comment, error) {
	comment := &Comment{}
	var user UserRef
	var avatarURL *string

	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.UserID,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
		&user.ID, &user.Name, &avatarURL,
	)
	if err != nil {
		return nil, err
	}

	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	comment.User = &user
	return comment, nil
}

// Create persists a new comment row.
func (repository *postgresRepository) Create(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.BlogComment.Table,
		schema.BlogComment.ID, schema.BlogComment.PostID,
		schema.BlogComment.UserID, schema.BlogComment.Content,
	)

	_, err := repository.pool.Exec(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Content,
	)
	return dberr.Wrap(err, "comment_create")
}

// FindByID retrieves a comment by primary key with its commenter reference.
func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := selectClause() + fmt.Sprintf(" WHERE c.%s = $1", schema.BlogComment.ID)

	comment, err := scanComment(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "comment_find_by_id")
	}
	return comment, nil
}

/*
ListByPost returns a post's comments newest-first with the total count.

Description: Uses COUNT(*) OVER() to retrieve the total without a second
query.
*/
func (repository *postgresRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) OVER() AS total_count,
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			u.%s, u.%s, u.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.BlogComment.ID, schema.BlogComment.PostID, schema.BlogComment.UserID,
		schema.BlogComment.Content, schema.BlogComment.CreatedAt, schema.BlogComment.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.AvatarURL,
		schema.BlogComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.BlogComment.UserID,
		schema.BlogComment.PostID,
		schema.BlogComment.CreatedAt, schema.BlogComment.ID,
	)

	return repository.queryComments(ctx, query, postID, limit, offset)
}

// ListAll returns comments across all posts newest-first with the total count.
func (repository *postgresRepository) ListAll(ctx context.Context, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) OVER() AS total_count,
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			u.%s, u.%s, u.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.BlogComment.ID, schema.BlogComment.PostID, schema.BlogComment.UserID,
		schema.BlogComment.Content, schema.BlogComment.CreatedAt, schema.BlogComment.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.AvatarURL,
		schema.BlogComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.BlogComment.UserID,
		schema.BlogComment.CreatedAt, schema.BlogComment.ID,
	)

	return repository.queryComments(ctx, query, limit, offset)
}

// queryComments runs a counted comment listing query and scans the rows.
func (repository *postgresRepository) queryComments(ctx context.Context, query string, args ...any) ([]*Comment, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "comment_list")
	}
	defer rows.Close()

	var comments []*Comment
	var totalCount int

	for rows.Next() {
		comment := &Comment{}
		var user UserRef
		var avatarURL *string

		err := rows.Scan(
			&totalCount,
			&comment.ID, &comment.PostID, &comment.UserID,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
			&user.ID, &user.Name, &avatarURL,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "comment_list_scan")
		}

		if avatarURL != nil {
			user.AvatarURL = *avatarURL
		}
		comment.User = &user

		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "comment_list_rows")
	}

	return comments, totalCount, nil
}

// Count returns the total number of comments.
func (repository *postgresRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.BlogComment.Table)

	var count int
	if err := repository.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "comment_count")
	}
	return count, nil
}

// Update persists changes to an existing comment row.
func (repository *postgresRepository) Update(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW()
		WHERE %s = $2
	`,
		schema.BlogComment.Table,
		schema.BlogComment.Content, schema.BlogComment.UpdatedAt,
		schema.BlogComment.ID,
	)

	result, err := repository.pool.Exec(ctx, query, comment.Content, comment.ID)
	if err != nil {
		return dberr.Wrap(err, "comment_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes a single comment row.
func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.BlogComment.Table, schema.BlogComment.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "comment_delete")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// DeleteByPost removes every comment on a post in one statement and reports
// how many rows went away. Zero is a valid result for a post with no
// discussion.
func (repository *postgresRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.BlogComment.Table, schema.BlogComment.PostID)

	result, err := repository.pool.Exec(ctx, query, postID)
	if err != nil {
		return 0, dberr.Wrap(err, "comment_delete_by_post")
	}
	return result.RowsAffected(), nil
}
