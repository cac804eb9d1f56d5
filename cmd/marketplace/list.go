// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package main

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aurras/marketplace/internal/discovery"
)

// listConfig holds configuration for the list command.
type listConfig struct {
	sorted bool
	match  string
	output string
}

// newListCmd creates the list subcommand with all flags configured.
func newListCmd() *cobra.Command {
	cfg := &listConfig{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accepted plugins",
		Long: `List every plugin whose manifest passes data integrity and schema
validation. Plugins appear in directory order unless --sorted is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.sorted, "sorted", false, "sort plugins by name using the configured locale")
	cmd.Flags().StringVar(&cfg.match, "match", "", "only list plugins whose id matches this glob")
	cmd.Flags().StringVarP(&cfg.output, "output", "o", formatTable, "output format (table, json, yaml)")

	return cmd
}

// runList executes the list command.
func runList(cmd *cobra.Command, cfg *listConfig) error {
	if cfg.output != formatTable && cfg.output != formatJSON && cfg.output != formatYAML {
		return unknownFormat(cfg.output)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.flush()

	catalog := a.catalog()
	var plugins []*discovery.Plugin
	if cfg.sorted {
		plugins = catalog.Sorted(cmd.Context())
	} else {
		plugins = catalog.Discover(cmd.Context())
	}

	if cfg.match != "" {
		plugins, err = discovery.Match(plugins, cfg.match)
		if err != nil {
			return err
		}
	}

	if cfg.output == formatTable {
		writePluginTable(cmd.OutOrStdout(), plugins)
		return nil
	}
	return writeStructured(cmd.OutOrStdout(), cfg.output, plugins)
}

// writePluginTable writes plugins as a human-readable table.
func writePluginTable(out io.Writer, plugins []*discovery.Plugin) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fprintf(w, "ID\tNAME\tVERSION\tCATEGORY\tAUTHOR\n")
	fprintf(w, "--\t----\t-------\t--------\t------\n")
	for _, p := range plugins {
		fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Version, orDash(p.Category), orDash(p.Author.Name))
	}

	_ = w.Flush()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
