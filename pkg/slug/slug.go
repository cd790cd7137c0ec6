// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

// Package slug derives URL-safe identifiers for categories.
//
// # Usage
//
// A category's slug is always computed from its name — never stored
// independently of it — so uniqueness of the name implies uniqueness of the
// slug under this mapping. The write path calls [From] on every create and
// whenever the name changes on update.
package slug

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// From converts a category name into its slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC so equivalent Unicode spellings map to one slug.
// 2. Converts to lowercase.
// 3. Replaces every rune outside [a-z0-9] with a hyphen.
//
// Hyphens are NOT collapsed or trimmed: each non-alphanumeric character maps
// to its own hyphen ("Node.js & Friends!" → "node-js---friends-"). Existing
// category URLs depend on this exact mapping.
//
// The function is pure and idempotent on its own output: a string already in
// slug form maps to itself.
func From(name string) string {
	normalized := norm.NFC.String(name)
	lowered := strings.ToLower(normalized)

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, lowered)
}
