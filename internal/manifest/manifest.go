// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package manifest parses plugin manifest.json files for the marketplace.
package manifest

import (
	"encoding/json"

	"github.com/samber/oops"
)

// Manifest represents an accepted plugin's manifest.json.
type Manifest struct {
	ID           string        `json:"id" jsonschema:"pattern=^[a-z0-9-]+$,minLength=3,maxLength=50"`
	Name         string        `json:"name" jsonschema:"minLength=1,maxLength=100"`
	Description  string        `json:"description" jsonschema:"minLength=10,maxLength=500"`
	Version      string        `json:"version" jsonschema:"pattern=^\\d+\\.\\d+\\.\\d+(-[a-zA-Z0-9-]+)?$"`
	Author       Author        `json:"author"`
	APIVersion   string        `json:"api_version" jsonschema:"enum=1.0"`
	Category     string        `json:"category,omitempty" jsonschema:"enum=audio,enum=integration,enum=interface,enum=utility,enum=theme,enum=visualization,enum=social,enum=streaming,enum=lyrics,enum=metadata"`
	Tags         []string      `json:"tags,omitempty" jsonschema:"maxItems=10"`
	License      string        `json:"license,omitempty"`
	Permissions  []string      `json:"permissions,omitempty"`
	Homepage     string        `json:"homepage,omitempty" jsonschema:"format=uri"`
	Repository   string        `json:"repository,omitempty" jsonschema:"format=uri"`
	Dependencies *Dependencies `json:"dependencies,omitempty"`
	EntryPoint   string        `json:"entry_point,omitempty"`
	// ConfigSchema is opaque to the marketplace.
	ConfigSchema json.RawMessage `json:"config_schema,omitempty"`
	Assets       *Assets         `json:"assets,omitempty"`
}

// Author identifies who publishes the plugin.
type Author struct {
	Name  string `json:"name" jsonschema:"minLength=1,maxLength=100"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Dependencies declares what the plugin needs at runtime.
type Dependencies struct {
	Python   string   `json:"python,omitempty"`
	Packages []string `json:"packages,omitempty"`
	Aurras   string   `json:"aurras,omitempty"`
}

// Assets holds paths to listing artwork, relative to the plugin directory.
type Assets struct {
	Icon       string `json:"icon,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	Banner     string `json:"banner,omitempty"`
}

// Decode converts a parsed value that already passed both validation
// passes into a Manifest. Optional fields that are absent, falsy or of an
// unexpected type are left at their zero value.
func Decode(v any) (*Manifest, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, oops.Code("MANIFEST_DECODE_FAILED").
			With("kind", KindOf(v).String()).
			Errorf("manifest is not an object")
	}

	m := &Manifest{
		ID:          stringField(obj, "id"),
		Name:        stringField(obj, "name"),
		Description: stringField(obj, "description"),
		Version:     stringField(obj, "version"),
		APIVersion:  stringField(obj, "api_version"),
		Category:    stringField(obj, "category"),
		Tags:        stringsField(obj, "tags"),
		License:     stringField(obj, "license"),
		Permissions: stringsField(obj, "permissions"),
		Homepage:    stringField(obj, "homepage"),
		Repository:  stringField(obj, "repository"),
		EntryPoint:  stringField(obj, "entry_point"),
	}

	if author, ok := obj["author"].(map[string]any); ok {
		m.Author = Author{
			Name:  stringField(author, "name"),
			Email: stringField(author, "email"),
			URL:   stringField(author, "url"),
		}
	}

	if deps, ok := obj["dependencies"].(map[string]any); ok {
		m.Dependencies = &Dependencies{
			Python:   stringField(deps, "python"),
			Packages: stringsField(deps, "packages"),
			Aurras:   stringField(deps, "aurras"),
		}
	}

	if assets, ok := obj["assets"].(map[string]any); ok {
		m.Assets = &Assets{
			Icon:       stringField(assets, "icon"),
			Screenshot: stringField(assets, "screenshot"),
			Banner:     stringField(assets, "banner"),
		}
	}

	if raw, ok := obj["config_schema"]; ok && raw != nil {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, oops.Code("MANIFEST_DECODE_FAILED").With("field", "config_schema").Wrap(err)
		}
		m.ConfigSchema = data
	}

	return m, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringsField(obj map[string]any, key string) []string {
	items, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
