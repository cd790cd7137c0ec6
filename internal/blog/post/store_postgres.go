// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lethanhan/inkpress/internal/platform/database/schema"
	"github.com/lethanhan/inkpress/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// selectClause is the shared projection for hydrated post reads: the post row
// joined with its author and category references.
func selectClause() string {
	return fmt.Sprintf(`
		SELECT
			p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
			u.%s, u.%s, u.%s, u.%s,
			c.%s, c.%s, c.%s
		FROM %s p
		JOIN %s u ON u.%s = p.%s
		LEFT JOIN %s c ON c.%s = p.%s
	`,
		schema.BlogPost.ID, schema.BlogPost.Title, schema.BlogPost.Content, schema.BlogPost.CategoryID,
		schema.BlogPost.ImageURL, schema.BlogPost.AuthorID, schema.BlogPost.CreatedAt, schema.BlogPost.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email, schema.UserAccount.AvatarURL,
		schema.BlogCategory.ID, schema.BlogCategory.Name, schema.BlogCategory.Slug,
		schema.BlogPost.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.BlogPost.AuthorID,
		schema.BlogCategory.Table, schema.BlogCategory.ID, schema.BlogPost.CategoryID,
	)
}

// scanPost maps one joined row into a hydrated [Post].
func scanPost(row interface{ Scan(dest ...any) error }) (*Post, error) {
	post := &Post{}
	var author AuthorRef
	var avatarURL *string
	var categoryID, categoryName, categorySlug *string

	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.CategoryID,
		&post.ImageURL, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
		&author.ID, &author.Name, &author.Email, &avatarURL,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return nil, err
	}

	if avatarURL != nil {
		author.AvatarURL = *avatarURL
	}
	post.Author = &author

	if categoryID != nil {
		post.Category = &CategoryRef{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}

	post.Likes = []string{}
	return post, nil
}

/*
Create persists a new post row.

Parameters:
  - ctx: context.Context
  - post: *Post (id, title, content, category, image, author populated)

Returns:
  - error: Conflict on foreign key violations, otherwise execution errors
*/
func (repository *postgresRepository) Create(ctx context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.BlogPost.Table,
		schema.BlogPost.ID, schema.BlogPost.Title, schema.BlogPost.Content,
		schema.BlogPost.CategoryID, schema.BlogPost.ImageURL, schema.BlogPost.AuthorID,
	)

	_, err := repository.pool.Exec(ctx, query,
		post.ID, post.Title, post.Content, post.CategoryID, post.ImageURL, post.AuthorID,
	)
	return dberr.Wrap(err, "post_create")
}

/*
FindByID retrieves a post by primary key with author, category, and like set.

Description: The author and category references are joined in a single
round-trip; the like set is loaded in a second query against the like relation
so the entity always reflects the current set.

Returns:
  - *Post: Hydrated post entity
  - error: apperr.NotFound if missing, otherwise execution errors
*/
func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	query := selectClause() + fmt.Sprintf(" WHERE p.%s = $1", schema.BlogPost.ID)

	post, err := scanPost(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "post_find_by_id")
	}

	likesByPost, err := repository.collectLikes(ctx, []string{post.ID})
	if err != nil {
		return nil, err
	}
	if likes, ok := likesByPost[post.ID]; ok {
		post.Likes = likes
	}

	return post, nil
}

// Exists reports whether a post row with the given id exists.
func (repository *postgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.BlogPost.Table, schema.BlogPost.ID)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "post_exists")
	}
	return exists, nil
}

/*
List returns posts newest-first with the total matching count.

Description: Uses COUNT(*) OVER() to retrieve the total without a second
query, then batch-loads the like sets for the whole page in one round-trip
to avoid N+1 access against the like relation.

Parameters:
  - ctx: context.Context
  - filter: Filter (optional category/author restrictions)
  - limit: int
  - offset: int

Returns:
  - []*Post: Page of hydrated posts
  - int: Total count matching the filter
  - error: Execution errors
*/
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(strings.Replace(selectClause(), "SELECT", "SELECT COUNT(*) OVER() AS total_count,", 1))

	var conditions []string
	if filter.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", schema.BlogPost.CategoryID, argID))
		args = append(args, filter.CategoryID)
		argID++
	}
	if filter.AuthorID != "" {
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", schema.BlogPost.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s DESC, p.%s DESC", schema.BlogPost.CreatedAt, schema.BlogPost.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "post_list")
	}
	defer rows.Close()

	var posts []*Post
	var totalCount int

	for rows.Next() {
		post := &Post{}
		var author AuthorRef
		var avatarURL *string
		var categoryID, categoryName, categorySlug *string

		err := rows.Scan(
			&totalCount,
			&post.ID, &post.Title, &post.Content, &post.CategoryID,
			&post.ImageURL, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
			&author.ID, &author.Name, &author.Email, &avatarURL,
			&categoryID, &categoryName, &categorySlug,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "post_list_scan")
		}

		if avatarURL != nil {
			author.AvatarURL = *avatarURL
		}
		post.Author = &author
		if categoryID != nil {
			post.Category = &CategoryRef{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
		}
		post.Likes = []string{}

		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "post_list_rows")
	}

	if err := repository.hydrateLikes(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, totalCount, nil
}

// ListRecent returns the most recently created posts.
func (repository *postgresRepository) ListRecent(ctx context.Context, limit int) ([]*Post, error) {
	posts, _, err := repository.List(ctx, Filter{}, limit, 0)
	return posts, err
}

// Count returns the total number of posts.
func (repository *postgresRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.BlogPost.Table)

	var count int
	if err := repository.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "post_count")
	}
	return count, nil
}

/*
Update persists changes to an existing post row.

Returns:
  - error: apperr.NotFound if the row vanished, otherwise execution errors
*/
func (repository *postgresRepository) Update(ctx context.Context, post *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $5
	`,
		schema.BlogPost.Table,
		schema.BlogPost.Title, schema.BlogPost.Content, schema.BlogPost.CategoryID,
		schema.BlogPost.ImageURL, schema.BlogPost.UpdatedAt,
		schema.BlogPost.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		post.Title, post.Content, post.CategoryID, post.ImageURL, post.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "post_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes a post row. Comment removal is orchestrated by the service.
func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.BlogPost.Table, schema.BlogPost.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "post_delete")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
ToggleLike atomically flips the (post, user) like membership.

Description: Each direction of the flip is a single statement. The insert
relies on the composite primary key with ON CONFLICT DO NOTHING, so two
concurrent likes from the same user collapse into one row; when the insert
touches no row the membership already existed and a delete performs the
unlike instead.

Returns:
  - bool: true when the flip produced a like, false for an unlike
  - error: Execution errors
*/
func (repository *postgresRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.BlogPostLike.Table,
		schema.BlogPostLike.PostID, schema.BlogPostLike.UserID,
		schema.BlogPostLike.PostID, schema.BlogPostLike.UserID,
	)

	result, err := repository.pool.Exec(ctx, insert, postID, userID)
	if err != nil {
		return false, dberr.Wrap(err, "post_like_insert")
	}
	if result.RowsAffected() == 1 {
		return true, nil
	}

	remove := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.BlogPostLike.Table, schema.BlogPostLike.PostID, schema.BlogPostLike.UserID)

	if _, err := repository.pool.Exec(ctx, remove, postID, userID); err != nil {
		return false, dberr.Wrap(err, "post_like_delete")
	}
	return false, nil
}

// ListLikes returns the ids of users currently liking the post.
func (repository *postgresRepository) ListLikes(ctx context.Context, postID string) ([]string, error) {
	likesByPost, err := repository.collectLikes(ctx, []string{postID})
	if err != nil {
		return nil, err
	}
	if likes, ok := likesByPost[postID]; ok {
		return likes, nil
	}
	return []string{}, nil
}

// hydrateLikes attaches the like sets to a page of posts in one round-trip.
func (repository *postgresRepository) hydrateLikes(ctx context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	likesByPost, err := repository.collectLikes(ctx, ids)
	if err != nil {
		return err
	}

	for _, post := range posts {
		if likes, ok := likesByPost[post.ID]; ok {
			post.Likes = likes
		}
	}
	return nil
}

// collectLikes loads like rows for a batch of post ids, grouped by post,
// oldest like first.
func (repository *postgresRepository) collectLikes(ctx context.Context, postIDs []string) (map[string][]string, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s ASC
	`,
		schema.BlogPostLike.PostID, schema.BlogPostLike.UserID, schema.BlogPostLike.Table,
		schema.BlogPostLike.PostID,
		schema.BlogPostLike.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, postIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "post_collect_likes")
	}
	defer rows.Close()

	likesByPost := make(map[string][]string, len(postIDs))
	for rows.Next() {
		var postID, userID string
		if err := rows.Scan(&postID, &userID); err != nil {
			return nil, dberr.Wrap(err, "post_collect_likes_scan")
		}
		likesByPost[postID] = append(likesByPost[postID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "post_collect_likes_rows")
	}

	return likesByPost, nil
}
