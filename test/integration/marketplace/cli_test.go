// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

//go:build integration

package marketplace_test

import (
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

// runCLI runs the marketplace command from source with args.
func runCLI(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "go", append([]string{"run", "."}, args...)...)
	cmd.Dir = "../../../cmd/marketplace"
	cmd.Env = append(cmd.Environ(), "XDG_CONFIG_HOME="+GinkgoT().TempDir())
	return cmd.Output()
}

var _ = Describe("marketplace CLI", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("lists accepted plugins as JSON", func() {
		out, err := runCLI(ctx, "list", "--data-dir", dataDir, "--sorted", "--output", "json")
		Expect(err).NotTo(HaveOccurred())

		var plugins []map[string]any
		Expect(json.Unmarshal(out, &plugins)).To(Succeed())
		Expect(plugins).To(HaveLen(3))
		Expect(plugins[1]["name"]).To(Equal("Équalizer"))
	})

	It("fails show for a rejected plugin", func() {
		_, err := runCLI(ctx, "show", "bad-version", "--data-dir", dataDir)
		Expect(err).To(HaveOccurred())
	})

	It("exits non-zero when validate sees an invalid manifest", func() {
		out, err := runCLI(ctx, "validate",
			filepath.Join(dataDir, "lyrics-sync"),
			filepath.Join(dataDir, "bad-version"))

		Expect(err).To(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("OK    " + filepath.Join(dataDir, "lyrics-sync")))
		Expect(string(out)).To(ContainSubstring("FAIL  " + filepath.Join(dataDir, "bad-version") + " (schema)"))
		Expect(string(out)).To(ContainSubstring("2 manifests: 1 valid, 1 invalid"))
	})

	It("builds the same index when validating concurrently", func() {
		seq, err := runCLI(ctx, "index", "--data-dir", dataDir)
		Expect(err).NotTo(HaveOccurred())
		par, err := runCLI(ctx, "index", "--data-dir", dataDir, "--concurrency", "4")
		Expect(err).NotTo(HaveOccurred())
		Expect(par).To(MatchJSON(seq))
	})
})
