// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package integrity

// Failure pairs a rejected value with the reasons it was rejected.
type Failure struct {
	// Index is the position of Value in the batch input.
	Index  int      `json:"index"`
	Value  any      `json:"value"`
	Errors []string `json:"errors"`
}

// Summary counts a batch outcome.
type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// BatchResult is the outcome of CheckBatch.
type BatchResult struct {
	Valid   []any     `json:"valid"`
	Invalid []Failure `json:"invalid"`
	Summary Summary   `json:"summary"`
}

// CheckBatch runs Check over values, preserving input order in both buckets.
func CheckBatch(values []any) BatchResult {
	var out BatchResult
	for i, v := range values {
		r := Check(v)
		if r.Valid {
			out.Valid = append(out.Valid, v)
		} else {
			out.Invalid = append(out.Invalid, Failure{Index: i, Value: v, Errors: r.Errors})
		}
	}
	out.Summary = Summary{
		Total:   len(values),
		Valid:   len(out.Valid),
		Invalid: len(out.Invalid),
	}
	return out
}
