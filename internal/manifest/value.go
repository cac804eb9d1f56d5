// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/samber/oops"
)

// Kind tags the closed set of values Parse can produce.
type Kind int

// Value kinds. KindInvalid is reported for anything Parse never emits.
const (
	KindInvalid Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the name used in validation messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf classifies v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case json.Number, float64, int, int64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// Truthy reports whether an optional field counts as provided.
// Null, false, zero and the empty string are absent; empty arrays and
// objects are present.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return true
	}
}

// Parse decodes untrusted manifest bytes into nil, bool, json.Number,
// string, []any or map[string]any. It does not require the top-level
// value to be an object; that is the integrity checker's job.
func Parse(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, oops.Code("MANIFEST_INVALID_JSON").Errorf("manifest data is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, oops.Code("MANIFEST_INVALID_JSON").Wrapf(err, "invalid JSON")
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, oops.Code("MANIFEST_INVALID_JSON").Errorf("invalid JSON: unexpected data after top-level value")
	}

	return v, nil
}
