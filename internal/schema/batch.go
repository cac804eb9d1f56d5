// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package schema

import (
	"fmt"

	"github.com/aurras/marketplace/internal/manifest"
)

// Failure pairs a rejected value with its rule violations.
type Failure struct {
	// Index is the position of Value in the batch input.
	Index  int      `json:"index"`
	Value  any      `json:"value"`
	Errors []string `json:"errors"`
}

// Summary counts a batch outcome.
type Summary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Warnings int `json:"warnings"`
}

// BatchResult is the outcome of ValidateBatch. Warnings are only collected
// from valid manifests and are prefixed with the manifest id.
type BatchResult struct {
	Valid    []any     `json:"valid"`
	Invalid  []Failure `json:"invalid"`
	Warnings []string  `json:"warnings"`
	Summary  Summary   `json:"summary"`
}

// ValidateBatch runs Validate over values in order.
func ValidateBatch(values []any) BatchResult {
	var out BatchResult
	for i, v := range values {
		r := Validate(v)
		if !r.Valid {
			out.Invalid = append(out.Invalid, Failure{Index: i, Value: v, Errors: r.Errors})
			continue
		}
		out.Valid = append(out.Valid, v)
		label := labelOf(v)
		for _, w := range r.Warnings {
			out.Warnings = append(out.Warnings, label+": "+w)
		}
	}
	out.Summary = Summary{
		Total:    len(values),
		Valid:    len(out.Valid),
		Invalid:  len(out.Invalid),
		Warnings: len(out.Warnings),
	}
	return out
}

func labelOf(v any) string {
	if data, ok := v.(map[string]any); ok && manifest.Truthy(data["id"]) {
		return fmt.Sprint(data["id"])
	}
	return "unknown"
}
