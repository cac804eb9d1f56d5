// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package discovery

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Uncategorized is the Stats bucket for plugins without a category.
const Uncategorized = "uncategorized"

// SearchEntry is one row of the client-side search index.
type SearchEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	AuthorName  string   `json:"authorName"`
	SearchText  string   `json:"searchText"`
}

// Stats summarizes the accepted plugins.
type Stats struct {
	Total       int            `json:"total"`
	LastUpdated time.Time      `json:"lastUpdated"`
	Categories  map[string]int `json:"categories"`
}

// Sorted runs discovery and orders the result by name using the catalog's
// locale collation.
func (c *Catalog) Sorted(ctx context.Context) []*Plugin {
	plugins := c.Discover(ctx)
	SortByName(plugins, c.locale)
	return plugins
}

// SortByName orders plugins by name for the BCP 47 locale tag. Plugins with
// equal names keep their relative order.
func SortByName(plugins []*Plugin, locale string) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	col := collate.New(tag)
	slices.SortStableFunc(plugins, func(a, b *Plugin) int {
		return col.CompareString(a.Name, b.Name)
	})
}

// Lookup runs discovery and returns the first plugin with the given id.
func (c *Catalog) Lookup(ctx context.Context, id string) (*Plugin, bool) {
	for _, p := range c.Discover(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// SearchIndex runs discovery and flattens each plugin for client-side search.
func (c *Catalog) SearchIndex(ctx context.Context) []SearchEntry {
	plugins := c.Discover(ctx)
	index := make([]SearchEntry, 0, len(plugins))
	for _, p := range plugins {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		text := strings.Join([]string{p.Name, p.Description, strings.Join(tags, " "), p.Author.Name}, " ")
		index = append(index, SearchEntry{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Tags:        tags,
			AuthorName:  p.Author.Name,
			SearchText:  strings.ToLower(text),
		})
	}
	return index
}

// Stats runs discovery and counts plugins per category.
func (c *Catalog) Stats(ctx context.Context) Stats {
	plugins := c.Discover(ctx)
	stats := Stats{
		Total:       len(plugins),
		LastUpdated: c.now().UTC(),
		Categories:  make(map[string]int),
	}
	for _, p := range plugins {
		category := p.Category
		if category == "" {
			category = Uncategorized
		}
		stats.Categories[category]++
	}
	return stats
}

// Match returns the plugins whose id matches the glob pattern. An empty
// pattern matches everything.
func Match(plugins []*Plugin, pattern string) ([]*Plugin, error) {
	if pattern == "" {
		return plugins, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, oops.Code("INVALID_PATTERN").With("pattern", pattern).Wrap(err)
	}
	var out []*Plugin
	for _, p := range plugins {
		if g.Match(p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}
