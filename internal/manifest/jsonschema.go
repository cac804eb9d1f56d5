// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package manifest

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
)

// SchemaID is the $id published for manifest.json files.
const SchemaID = "https://aurras.dev/schemas/manifest.schema.json"

var (
	schemaMu    sync.Mutex
	schemaCache *jschema.Schema
)

// GenerateSchema generates a JSON Schema from the Manifest struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Manifest{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Aurras Marketplace Plugin Manifest"
	schema.Description = "Schema for marketplace manifest.json files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("SCHEMA_GENERATE_FAILED").Wrapf(err, "failed to marshal schema")
	}
	return data, nil
}

// ValidateJSONSchema checks manifest bytes against the generated JSON Schema.
// It is stricter about types than the marketplace validators and is only
// used as an advisory check.
func ValidateJSONSchema(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	if err := sch.Validate(v); err != nil {
		return oops.Code("MANIFEST_SCHEMA_MISMATCH").Wrapf(err, "schema validation failed")
	}
	return nil
}

func compiledSchema() (*jschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if schemaCache != nil {
		return schemaCache, nil
	}

	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	doc, err := jschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").Wrapf(err, "failed to parse schema JSON")
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("manifest.schema.json", doc); err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").Wrapf(err, "failed to add schema resource")
	}

	sch, err := c.Compile("manifest.schema.json")
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").Wrapf(err, "failed to compile schema")
	}

	schemaCache = sch
	return sch, nil
}

// FormatSchemaError strips wrapping prefixes from a ValidateJSONSchema error.
func FormatSchemaError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, "schema validation failed: "); i >= 0 {
		msg = msg[i+len("schema validation failed: "):]
	}
	return msg
}
