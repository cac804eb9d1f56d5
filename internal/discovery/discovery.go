// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package discovery scans the marketplace data directory for plugin
// manifests, runs the integrity and schema passes over each one and
// exposes the accepted plugins to the site renderer.
//
// Discovery never fails as a whole: an unreadable data directory yields no
// plugins, and a bad manifest only removes that plugin. Every problem is
// reported through the Logger.
package discovery

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/aurras/marketplace/internal/integrity"
	"github.com/aurras/marketplace/internal/manifest"
	"github.com/aurras/marketplace/internal/observability"
	"github.com/aurras/marketplace/internal/schema"
	"github.com/aurras/marketplace/pkg/errutil"
)

// DefaultManifestName is the file looked up in each plugin directory.
const DefaultManifestName = "manifest.json"

var tracer = otel.Tracer("github.com/aurras/marketplace/internal/discovery")

// Logger receives progress and failure reports. *slog.Logger satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Plugin is an accepted manifest and the directory it was found in.
type Plugin struct {
	*manifest.Manifest

	// Dir is the plugin's directory name relative to the data directory.
	Dir string `json:"-"`
	// Warnings are the schema warnings raised while accepting the plugin.
	Warnings []string `json:"-"`
}

// Catalog discovers plugins under a marketplace data directory.
type Catalog struct {
	fsys         fs.FS
	logger       Logger
	manifestName string
	concurrency  int
	locale       string
	now          func() time.Time
	metrics      *observability.Metrics
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// WithManifestName overrides the manifest file name.
func WithManifestName(name string) Option {
	return func(c *Catalog) {
		c.manifestName = name
	}
}

// WithConcurrency sets how many manifests are read and validated at once.
// Values below 2 process plugins one at a time.
func WithConcurrency(n int) Option {
	return func(c *Catalog) {
		c.concurrency = n
	}
}

// WithLocale sets the BCP 47 tag used to order the sorted view.
func WithLocale(tag string) Option {
	return func(c *Catalog) {
		c.locale = tag
	}
}

// WithClock sets the time source used for statistics.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// WithMetrics records discovery metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Catalog) {
		c.metrics = m
	}
}

// New creates a Catalog reading plugin directories from fsys.
func New(fsys fs.FS, opts ...Option) *Catalog {
	c := &Catalog{
		fsys:         fsys,
		logger:       slog.Default(),
		manifestName: DefaultManifestName,
		concurrency:  1,
		locale:       "en",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDir creates a Catalog over the directory dir.
func NewDir(dir string, opts ...Option) *Catalog {
	return New(os.DirFS(dir), opts...)
}

// outcome is the result of processing one plugin directory.
type outcome struct {
	dir      string
	status   string
	plugin   *Plugin
	err      error
	problems []string
}

// Discover returns the accepted plugins in directory listing order.
func (c *Catalog) Discover(ctx context.Context) []*Plugin {
	_, span := tracer.Start(ctx, "discovery.Discover")
	defer span.End()

	start := time.Now()
	log := runLogger{Logger: c.logger, runID: ulid.Make().String()}

	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		err = oops.Code("DISCOVERY_LIST_FAILED").Wrap(err)
		errutil.LogError(log, "failed to discover plugins", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return []*Plugin{}
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	plugins := make([]*Plugin, 0, len(dirs))
	var warnings []*Plugin
	for _, o := range c.processAll(dirs) {
		c.metrics.RecordManifest(o.status)

		switch o.status {
		case observability.OutcomeUnreadable:
			errutil.LogError(log, "failed to process plugin", o.err, "dir", o.dir)
		case observability.OutcomeInvalidJSON:
			errutil.LogError(log, "JSON parsing failed", o.err, "dir", o.dir)
		case observability.OutcomeIntegrityFailed:
			log.Error("data integrity failed", "dir", o.dir, "errors", o.problems)
		case observability.OutcomeSchemaFailed:
			log.Error("schema validation failed", "dir", o.dir, "errors", o.problems)
		case observability.OutcomeAccepted:
			plugins = append(plugins, o.plugin)
			if len(o.plugin.Warnings) > 0 {
				warnings = append(warnings, o.plugin)
				c.metrics.RecordWarnings(len(o.plugin.Warnings))
			}
			log.Info("validated plugin", "dir", o.dir, "plugin", o.plugin.Name)
		}
	}

	for _, p := range warnings {
		log.Warn("validation warnings", "dir", p.Dir, "warnings", strings.Join(p.Warnings, ", "))
	}
	log.Info("discovered plugins", "count", len(plugins))

	c.metrics.RecordRun(time.Since(start), len(plugins))
	span.SetAttributes(
		attribute.Int("marketplace.plugin_dirs", len(dirs)),
		attribute.Int("marketplace.plugins_accepted", len(plugins)),
	)
	return plugins
}

// processAll runs process over dirs, in parallel when configured. Outcomes
// keep the order of dirs.
func (c *Catalog) processAll(dirs []string) []outcome {
	outcomes := make([]outcome, len(dirs))
	if c.concurrency < 2 {
		for i, dir := range dirs {
			outcomes[i] = c.process(dir)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			outcomes[i] = c.process(dir)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// process reads, parses and validates one plugin directory.
func (c *Catalog) process(dir string) outcome {
	o := outcome{dir: dir}

	data, err := fs.ReadFile(c.fsys, path.Join(dir, c.manifestName))
	if err != nil {
		o.status = observability.OutcomeUnreadable
		o.err = oops.Code("MANIFEST_UNREADABLE").With("dir", dir).Wrap(err)
		return o
	}

	v, err := manifest.Parse(data)
	if err != nil {
		o.status = observability.OutcomeInvalidJSON
		o.err = err
		return o
	}

	if r := integrity.Check(v); !r.Valid {
		o.status = observability.OutcomeIntegrityFailed
		o.problems = r.Errors
		return o
	}

	r := schema.Validate(v)
	if !r.Valid {
		o.status = observability.OutcomeSchemaFailed
		o.problems = r.Errors
		return o
	}

	m, err := manifest.Decode(v)
	if err != nil {
		o.status = observability.OutcomeUnreadable
		o.err = err
		return o
	}

	o.status = observability.OutcomeAccepted
	o.plugin = &Plugin{Manifest: m, Dir: dir, Warnings: r.Warnings}
	return o
}

// runLogger tags every line with the discovery run id.
type runLogger struct {
	Logger
	runID string
}

func (l runLogger) Info(msg string, args ...any) {
	l.Logger.Info(msg, append(args, "run_id", l.runID)...)
}

func (l runLogger) Warn(msg string, args ...any) {
	l.Logger.Warn(msg, append(args, "run_id", l.runID)...)
}

func (l runLogger) Error(msg string, args ...any) {
	l.Logger.Error(msg, append(args, "run_id", l.runID)...)
}
