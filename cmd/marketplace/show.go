// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// newShowCmd creates the show subcommand.
func newShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one accepted plugin by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "output format (json, yaml)")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, id, output string) error {
	if output != formatJSON && output != formatYAML {
		return unknownFormat(output)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.flush()

	plugin, ok := a.catalog().Lookup(cmd.Context(), id)
	if !ok {
		return oops.Code("PLUGIN_NOT_FOUND").With("id", id).Errorf("plugin not found: %s", id)
	}
	return writeStructured(cmd.OutOrStdout(), output, plugin)
}
