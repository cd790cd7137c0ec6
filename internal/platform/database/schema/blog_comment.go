// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package schema

// BlogCommentTable represents the 'blog.comment' table
type BlogCommentTable struct {
	Table     string
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// BlogComment is the schema definition for blog.comment
var BlogComment = BlogCommentTable{
	Table:     "blog.comment",
	ID:        "id",
	PostID:    "postid",
	UserID:    "userid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t BlogCommentTable) Columns() []string {
	return []string{t.ID, t.PostID, t.UserID, t.Content, t.CreatedAt, t.UpdatedAt}
}
