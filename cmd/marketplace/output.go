// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return oops.Code("OUTPUT_FAILED").Wrapf(err, "failed to encode JSON")
	}
	return nil
}

// writeYAML writes v as YAML using its JSON field names.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return oops.Code("OUTPUT_FAILED").Wrapf(err, "failed to encode YAML")
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return oops.Code("OUTPUT_FAILED").Wrapf(err, "failed to encode YAML")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return oops.Code("OUTPUT_FAILED").Wrapf(err, "failed to encode YAML")
	}
	return enc.Close()
}

// writeStructured writes v in the json or yaml format.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		return writeJSON(w, v)
	case formatYAML:
		return writeYAML(w, v)
	default:
		return unknownFormat(format)
	}
}

func unknownFormat(format string) error {
	return oops.Code("OUTPUT_FORMAT_INVALID").
		With("format", format).
		Errorf("unknown output format %q", format)
}

// fprintf writes to w, ignoring errors like the tabwriter helpers do.
func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
