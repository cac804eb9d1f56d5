// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/aurras/marketplace/internal/integrity"
	"github.com/aurras/marketplace/internal/manifest"
	"github.com/aurras/marketplace/internal/observability"
	"github.com/aurras/marketplace/internal/schema"
)

// validateConfig holds configuration for the validate command.
type validateConfig struct {
	jsonSchema bool
}

// rejection records why one input path was rejected.
type rejection struct {
	stage  string
	errors []string
}

// newValidateCmd creates the validate subcommand with all flags configured.
func newValidateCmd() *cobra.Command {
	cfg := &validateConfig{}

	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate manifest files or plugin directories",
		Long: `Validate manifests without building the catalog. Each path is either a
manifest file or a plugin directory containing one. Every manifest is
checked for data integrity, then schema conformance.
Exits with code 0 when all manifests are valid, non-zero otherwise.

Useful in CI pipelines before publishing a plugin:
  marketplace validate src/data/marketplace/*`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonSchema, "json-schema", false, "also report advisory JSON Schema mismatches")

	return cmd
}

// runValidate executes the validate command.
func runValidate(cmd *cobra.Command, paths []string, cfg *validateConfig) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.flush()

	out := cmd.OutOrStdout()
	rejected := make(map[int]rejection)
	notes := make(map[int]string)

	// values[j] was read from paths[origin[j]].
	var values []any
	var origin []int
	for i, p := range paths {
		data, err := readManifest(p, a.cfg.ManifestName)
		if err != nil {
			rejected[i] = rejection{stage: "read", errors: []string{err.Error()}}
			a.metrics.RecordManifest(observability.OutcomeUnreadable)
			continue
		}
		v, err := manifest.Parse(data)
		if err != nil {
			rejected[i] = rejection{stage: "json", errors: []string{err.Error()}}
			a.metrics.RecordManifest(observability.OutcomeInvalidJSON)
			continue
		}
		if cfg.jsonSchema {
			if err := manifest.ValidateJSONSchema(data); err != nil {
				notes[i] = manifest.FormatSchemaError(err)
			}
		}
		values = append(values, v)
		origin = append(origin, i)
	}

	checked := integrity.CheckBatch(values)
	failedIntegrity := make(map[int]bool, len(checked.Invalid))
	for _, f := range checked.Invalid {
		failedIntegrity[f.Index] = true
		rejected[origin[f.Index]] = rejection{stage: "integrity", errors: f.Errors}
		a.metrics.RecordManifest(observability.OutcomeIntegrityFailed)
	}

	// checked.Valid[k] was read from paths[passed[k]].
	var passed []int
	for j := range values {
		if !failedIntegrity[j] {
			passed = append(passed, origin[j])
		}
	}

	validated := schema.ValidateBatch(checked.Valid)
	for _, f := range validated.Invalid {
		rejected[passed[f.Index]] = rejection{stage: "schema", errors: f.Errors}
		a.metrics.RecordManifest(observability.OutcomeSchemaFailed)
	}
	for range validated.Valid {
		a.metrics.RecordManifest(observability.OutcomeAccepted)
	}
	a.metrics.RecordWarnings(len(validated.Warnings))

	writeValidation(out, paths, rejected, notes, validated.Warnings)

	if len(rejected) > 0 {
		return oops.Code("VALIDATION_FAILED").
			With("invalid", len(rejected)).
			Errorf("validation failed: %d of %d manifests invalid", len(rejected), len(paths))
	}
	return nil
}

// readManifest reads path, or the manifest inside path when it is a directory.
func readManifest(path, manifestName string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, oops.Code("MANIFEST_UNREADABLE").With("path", path).Wrap(err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifestName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("MANIFEST_UNREADABLE").With("path", path).Wrap(err)
	}
	return data, nil
}

// writeValidation prints one line per path, its errors, then the warnings
// and a summary.
func writeValidation(w io.Writer, paths []string, rejected map[int]rejection, notes map[int]string, warnings []string) {
	for i, p := range paths {
		if r, ok := rejected[i]; ok {
			fprintf(w, "FAIL  %s (%s)\n", p, r.stage)
			for _, e := range r.errors {
				fprintf(w, "      - %s\n", e)
			}
		} else {
			fprintf(w, "OK    %s\n", p)
		}
		if note, ok := notes[i]; ok {
			fprintf(w, "NOTE  %s: %s\n", p, note)
		}
	}
	for _, warning := range warnings {
		fprintf(w, "WARN  %s\n", warning)
	}
	fprintf(w, "\n%d manifests: %d valid, %d invalid, %d warnings\n",
		len(paths), len(paths)-len(rejected), len(rejected), len(warnings))
}
