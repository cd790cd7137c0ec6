// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package category implements the taxonomy domain: named categories that posts
are filed under.

# Core Responsibility

  - Naming: Category names are unique; each carries a URL slug derived
    mechanically from the name.
  - Administration: Reads are public; create, update, and delete are
    admin-only decisions made by the authz policy engine.

The slug is never user-supplied. It is derived from the name on creation and
recomputed only when the name changes, so a description-only edit can never
move a category's URL.
*/
package category

import "time"

// Category represents one taxonomy entry.
type Category struct {
	ID          string `json:"id"` // UUIDv7
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
)
