// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package schema

// BlogPostLikeTable represents the 'blog.postlike' table.
//
// The composite primary key (postid, userid) enforces the at-most-once like
// invariant at the storage level.
type BlogPostLikeTable struct {
	Table     string
	PostID    string
	UserID    string
	CreatedAt string
}

// BlogPostLike is the schema definition for blog.postlike
var BlogPostLike = BlogPostLikeTable{
	Table:     "blog.postlike",
	PostID:    "postid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
