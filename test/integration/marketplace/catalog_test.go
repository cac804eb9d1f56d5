// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

//go:build integration

package marketplace_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aurras/marketplace/internal/discovery"
	"github.com/aurras/marketplace/internal/observability"
)

func ids(plugins []*discovery.Plugin) []string {
	out := make([]string, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, p.ID)
	}
	return out
}

var _ = Describe("Catalog", func() {
	var (
		ctx     context.Context
		catalog *discovery.Catalog
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		catalog = discovery.NewDir(dataDir, discovery.WithLogger(logger))
	})

	Describe("Discover", func() {
		It("accepts only manifests passing both validators, in directory order", func() {
			Expect(ids(catalog.Discover(ctx))).To(Equal([]string{"discord", "equalizer", "lyrics-sync"}))
		})

		It("returns the same plugins when validating in parallel", func() {
			parallel := discovery.NewDir(dataDir, discovery.WithConcurrency(4))
			Expect(ids(parallel.Discover(ctx))).To(Equal(ids(catalog.Discover(ctx))))
		})

		It("attaches schema warnings to accepted plugins", func() {
			plugins := catalog.Discover(ctx)
			Expect(plugins[0].Warnings).To(ContainElement("Recommended field 'category' is missing"))
			Expect(plugins[2].Warnings).To(BeEmpty())
		})
	})

	Describe("views", func() {
		It("sorts accented names by locale collation rather than bytes", func() {
			Expect(ids(catalog.Sorted(ctx))).To(Equal([]string{"discord", "equalizer", "lyrics-sync"}))
		})

		It("finds a plugin by id and misses rejected ones", func() {
			p, ok := catalog.Lookup(ctx, "lyrics-sync")
			Expect(ok).To(BeTrue())
			Expect(p.Author.Email).To(Equal("alice@example.com"))

			_, ok = catalog.Lookup(ctx, "no-author")
			Expect(ok).To(BeFalse())
		})

		It("builds a search index entry per plugin", func() {
			index := catalog.SearchIndex(ctx)
			Expect(index).To(HaveLen(3))
			Expect(index[2].SearchText).To(ContainSubstring("karaoke"))
		})

		It("counts plugins per category", func() {
			stats := catalog.Stats(ctx)
			Expect(stats.Total).To(Equal(3))
			Expect(stats.Categories).To(Equal(map[string]int{
				"audio":                 1,
				"lyrics":                1,
				discovery.Uncategorized: 1,
			}))
		})
	})

	Describe("metrics", func() {
		It("records one outcome per plugin folder", func() {
			reg := prometheus.NewRegistry()
			m := observability.NewMetrics(reg)
			discovery.NewDir(dataDir, discovery.WithMetrics(m)).Discover(ctx)

			Expect(testutil.ToFloat64(m.ManifestsTotal.WithLabelValues(observability.OutcomeAccepted))).To(Equal(3.0))
			Expect(testutil.ToFloat64(m.ManifestsTotal.WithLabelValues(observability.OutcomeUnreadable))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.ManifestsTotal.WithLabelValues(observability.OutcomeInvalidJSON))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.ManifestsTotal.WithLabelValues(observability.OutcomeIntegrityFailed))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.ManifestsTotal.WithLabelValues(observability.OutcomeSchemaFailed))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.AcceptedPlugins)).To(Equal(3.0))
		})
	})
})
