// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lethanhan/inkpress/pkg/slug"
)

/*
TestFrom covers the normalization mapping, including the exact behavior for
consecutive special characters (each maps to its own hyphen).
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Technology", "technology"},
		{"spaces", "Web Development", "web-development"},
		{"specials_each_map_to_hyphen", "Node.js & Friends!", "node-js---friends-"},
		{"digits_kept", "Top 10 Tips", "top-10-tips"},
		{"already_normalized", "web-development", "web-development"},
		{"unicode_accents_become_hyphens", "Café", "caf-"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Idempotent verifies that applying the mapping to an already-normalized
string yields the same string.
*/
func TestFrom_Idempotent(t *testing.T) {
	inputs := []string{
		"Node.js & Friends!",
		"Web Development",
		"Top 10 Tips",
		"",
	}

	for _, input := range inputs {
		once := slug.From(input)
		twice := slug.From(once)
		assert.Equal(t, once, twice, "slug mapping must be idempotent for %q", input)
	}
}
