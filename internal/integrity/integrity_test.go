// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package integrity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurras/marketplace/internal/integrity"
	"github.com/aurras/marketplace/internal/manifest"
)

func parse(t *testing.T, data string) any {
	t.Helper()
	v, err := manifest.Parse([]byte(data))
	require.NoError(t, err)
	return v
}

func validDoc() map[string]any {
	return map[string]any{
		"id":          "foo",
		"name":        "Foo",
		"description": "A sample plugin for testing.",
		"version":     "1.0.0",
		"author":      map[string]any{"name": "Alice"},
		"api_version": "1.0",
	}
}

func TestCheck_Valid(t *testing.T) {
	r := integrity.Check(parse(t, `{"id":"foo","name":"Foo","description":"A sample plugin for testing.","version":"1.0.0","author":{"name":"Alice"},"api_version":"1.0"}`))
	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
}

func TestCheck_NotAnObject(t *testing.T) {
	for _, v := range []any{nil, "manifest", json.Number("1"), []any{validDoc()}} {
		r := integrity.Check(v)
		assert.False(t, r.Valid)
		assert.Equal(t, []string{"Data is missing or not an object"}, r.Errors)
	}
}

func TestCheck_MandatoryFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{
		{
			name:    "missing id",
			mutate:  func(d map[string]any) { delete(d, "id") },
			wantErr: "Required field 'id' is missing",
		},
		{
			name:    "null name",
			mutate:  func(d map[string]any) { d["name"] = nil },
			wantErr: "Required field 'name' is null",
		},
		{
			name:    "numeric version",
			mutate:  func(d map[string]any) { d["version"] = json.Number("1") },
			wantErr: "Field 'version' must be of type 'string', got 'number'",
		},
		{
			name:    "string author",
			mutate:  func(d map[string]any) { d["author"] = "Alice" },
			wantErr: "Field 'author' must be of type 'object', got 'string'",
		},
		{
			name:    "array author",
			mutate:  func(d map[string]any) { d["author"] = []any{"Alice"} },
			wantErr: "Field 'author' must be of type 'object', got 'array'",
		},
		{
			name:    "blank description",
			mutate:  func(d map[string]any) { d["description"] = "   " },
			wantErr: "String field 'description' cannot be empty",
		},
		{
			name:    "author without name",
			mutate:  func(d map[string]any) { d["author"] = map[string]any{"email": "a@b.co"} },
			wantErr: "Field 'author.name' is required and must be a non-empty string",
		},
		{
			name:    "author with blank name",
			mutate:  func(d map[string]any) { d["author"] = map[string]any{"name": " "} },
			wantErr: "Field 'author.name' is required and must be a non-empty string",
		},
		{
			name:    "missing api_version",
			mutate:  func(d map[string]any) { delete(d, "api_version") },
			wantErr: "Required field 'api_version' is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)

			r := integrity.Check(doc)
			assert.False(t, r.Valid)
			assert.Equal(t, []string{tt.wantErr}, r.Errors)
		})
	}
}

func TestCheck_AccumulatesOneErrorPerField(t *testing.T) {
	r := integrity.Check(map[string]any{
		"name":    "",
		"version": true,
		"author":  nil,
	})

	assert.False(t, r.Valid)
	assert.Equal(t, []string{
		"Required field 'id' is missing",
		"String field 'name' cannot be empty",
		"Required field 'description' is missing",
		"Field 'version' must be of type 'string', got 'boolean'",
		"Required field 'author' is null",
		"Required field 'api_version' is missing",
	}, r.Errors)
}

func TestCheck_OptionalLists(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		wantErr string
	}{
		{"tags not a list", "tags", "audio", "Field 'tags' must be an array if provided"},
		{"tags null", "tags", nil, "Field 'tags' must be an array if provided"},
		{"tags with empty entry", "tags", []any{"audio", "", " "}, "All tags must be non-empty strings"},
		{"tags with number", "tags", []any{json.Number("1")}, "All tags must be non-empty strings"},
		{"permissions not a list", "permissions", map[string]any{}, "Field 'permissions' must be an array if provided"},
		{"permissions with blank", "permissions", []any{"audio.playback", "  "}, "All permissions must be non-empty strings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			doc[tt.field] = tt.value

			r := integrity.Check(doc)
			assert.False(t, r.Valid)
			assert.Equal(t, []string{tt.wantErr}, r.Errors)
		})
	}
}

func TestCheck_ListsAreCheckedIndependently(t *testing.T) {
	doc := validDoc()
	doc["tags"] = []any{""}
	doc["permissions"] = "all"

	r := integrity.Check(doc)
	assert.Equal(t, []string{
		"All tags must be non-empty strings",
		"Field 'permissions' must be an array if provided",
	}, r.Errors)
}

func TestCheck_ValidOptionalLists(t *testing.T) {
	doc := validDoc()
	doc["tags"] = []any{}
	doc["permissions"] = []any{"anything.goes"}

	r := integrity.Check(doc)
	assert.True(t, r.Valid)
}

func TestCheckBatch(t *testing.T) {
	bad := validDoc()
	delete(bad, "id")
	good := validDoc()

	out := integrity.CheckBatch([]any{good, bad, "nope"})

	assert.Equal(t, integrity.Summary{Total: 3, Valid: 1, Invalid: 2}, out.Summary)
	require.Len(t, out.Valid, 1)
	require.Len(t, out.Invalid, 2)
	assert.Equal(t, []string{"Required field 'id' is missing"}, out.Invalid[0].Errors)
	assert.Equal(t, "nope", out.Invalid[1].Value)
	assert.Equal(t, []int{1, 2}, []int{out.Invalid[0].Index, out.Invalid[1].Index})
}
