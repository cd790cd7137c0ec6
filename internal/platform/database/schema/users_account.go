// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

// Package schema is the central registry of table and column names.
//
// Repositories build their SQL from these definitions so a rename happens in
// exactly one place.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	Bio       string
	AvatarURL string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Password:  "passwordhash",
	Role:      "role",
	Bio:       "bio",
	AvatarURL: "avatarurl",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.Role,
		t.Bio, t.AvatarURL, t.CreatedAt, t.UpdatedAt,
	}
}
