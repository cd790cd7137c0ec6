// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lethanhan/inkpress/internal/platform/database/schema"
	"github.com/lethanhan/inkpress/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed category store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func selectClause() string {
	return fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s FROM %s",
		schema.BlogCategory.ID, schema.BlogCategory.Name, schema.BlogCategory.Slug,
		schema.BlogCategory.Description, schema.BlogCategory.CreatedAt, schema.BlogCategory.UpdatedAt,
		schema.BlogCategory.Table,
	)
}

func scanCategory(row interface{ Scan(dest ...any) error }) (*Category, error) {
	category := &Category{}
	var description *string

	err := row.Scan(
		&category.ID, &category.Name, &category.Slug,
		&description, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		category.Description = *description
	}
	return category, nil
}

// Create persists a new category row. Unique indexes on name and slug turn
// duplicates into a Conflict.
func (repository *postgresRepository) Create(ctx context.Context, category *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.BlogCategory.Table,
		schema.BlogCategory.ID, schema.BlogCategory.Name,
		schema.BlogCategory.Slug, schema.BlogCategory.Description,
	)

	_, err := repository.pool.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Description,
	)
	return dberr.Wrap(err, "category_create")
}

// FindByID retrieves a category by primary key.
func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Category, error) {
	query := selectClause() + fmt.Sprintf(" WHERE %s = $1", schema.BlogCategory.ID)

	category, err := scanCategory(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "category_find_by_id")
	}
	return category, nil
}

// FindBySlug retrieves a category by its URL slug.
func (repository *postgresRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	query := selectClause() + fmt.Sprintf(" WHERE %s = $1", schema.BlogCategory.Slug)

	category, err := scanCategory(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "category_find_by_slug")
	}
	return category, nil
}

// List returns all categories ordered by name.
func (repository *postgresRepository) List(ctx context.Context) ([]*Category, error) {
	query := selectClause() + fmt.Sprintf(" ORDER BY %s ASC", schema.BlogCategory.Name)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "category_list")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "category_list_scan")
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "category_list_rows")
	}

	return categories, nil
}

// Update persists changes to an existing category row.
func (repository *postgresRepository) Update(ctx context.Context, category *Category) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4
	`,
		schema.BlogCategory.Table,
		schema.BlogCategory.Name, schema.BlogCategory.Slug,
		schema.BlogCategory.Description, schema.BlogCategory.UpdatedAt,
		schema.BlogCategory.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		category.Name, category.Slug, category.Description, category.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "category_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes a category row. Referencing posts block the delete through
// the foreign key, surfaced as a Conflict.
func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.BlogCategory.Table, schema.BlogCategory.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "category_delete")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
