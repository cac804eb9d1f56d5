// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package main

import (
	"bytes"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// newIndexCmd creates the index subcommand.
func newIndexCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the client-side search index",
		Long: `Build the search index used by the marketplace UI. Each entry carries
the plugin id, name, description, tags, author name, and a lower-cased
search text. The index is written as JSON to stdout or to --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd, out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the index to this file instead of stdout")

	return cmd
}

// runIndex executes the index command.
func runIndex(cmd *cobra.Command, out string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.flush()

	entries := a.catalog().SearchIndex(cmd.Context())
	if out == "" {
		return writeJSON(cmd.OutOrStdout(), entries)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, entries); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o600); err != nil {
		return oops.Code("INDEX_WRITE_FAILED").With("path", out).Wrap(err)
	}
	a.logger.Info("wrote search index", "path", out, "count", len(entries))
	return nil
}
