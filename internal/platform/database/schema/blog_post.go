// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package schema

// BlogPostTable represents the 'blog.post' table
type BlogPostTable struct {
	Table      string
	ID         string
	Title      string
	Content    string
	CategoryID string
	ImageURL   string
	AuthorID   string
	CreatedAt  string
	UpdatedAt  string
}

// BlogPost is the schema definition for blog.post
var BlogPost = BlogPostTable{
	Table:      "blog.post",
	ID:         "id",
	Title:      "title",
	Content:    "content",
	CategoryID: "categoryid",
	ImageURL:   "imageurl",
	AuthorID:   "authorid",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t BlogPostTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Content, t.CategoryID, t.ImageURL,
		t.AuthorID, t.CreatedAt, t.UpdatedAt,
	}
}
