// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package integrity performs the structural pass over a parsed manifest:
// mandatory fields are present, correctly typed and non-empty.
package integrity

import (
	"fmt"
	"strings"

	"github.com/aurras/marketplace/internal/manifest"
)

// Result is the outcome of Check.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type requiredField struct {
	name string
	kind manifest.Kind
}

// requiredFields is ordered; errors are reported in this order.
var requiredFields = []requiredField{
	{"id", manifest.KindString},
	{"name", manifest.KindString},
	{"description", manifest.KindString},
	{"version", manifest.KindString},
	{"author", manifest.KindObject},
	{"api_version", manifest.KindString},
}

// Check validates the structure of v. Every violation is collected; only a
// non-object input stops the check early.
func Check(v any) Result {
	data, ok := v.(map[string]any)
	if !ok {
		return Result{Errors: []string{"Data is missing or not an object"}}
	}

	var errs []string
	for _, f := range requiredFields {
		value, present := data[f.name]
		if !present {
			errs = append(errs, fmt.Sprintf("Required field '%s' is missing", f.name))
			continue
		}
		if value == nil {
			errs = append(errs, fmt.Sprintf("Required field '%s' is null", f.name))
			continue
		}
		if got := manifest.KindOf(value); got != f.kind {
			errs = append(errs, fmt.Sprintf("Field '%s' must be of type '%s', got '%s'", f.name, f.kind, got))
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("String field '%s' cannot be empty", f.name))
			continue
		}
		if f.name == "author" {
			author := value.(map[string]any)
			if !nonEmptyString(author["name"]) {
				errs = append(errs, "Field 'author.name' is required and must be a non-empty string")
			}
		}
	}

	errs = append(errs, checkStringList(data, "tags", "All tags must be non-empty strings")...)
	errs = append(errs, checkStringList(data, "permissions", "All permissions must be non-empty strings")...)

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// checkStringList validates an optional list field. Bad elements produce a
// single aggregate error for the whole field.
func checkStringList(data map[string]any, field, elemMsg string) []string {
	value, present := data[field]
	if !present {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return []string{fmt.Sprintf("Field '%s' must be an array if provided", field)}
	}
	for _, item := range items {
		if !nonEmptyString(item) {
			return []string{elemMsg}
		}
	}
	return nil
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}
