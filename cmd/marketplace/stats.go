// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package main

import (
	"github.com/spf13/cobra"
)

// newStatsCmd creates the stats subcommand.
func newStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long:  `Show the number of accepted plugins, the time of the run, and a count per category.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != formatJSON && output != formatYAML {
				return unknownFormat(output)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.flush()

			return writeStructured(cmd.OutOrStdout(), output, a.catalog().Stats(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "output format (json, yaml)")

	return cmd
}
