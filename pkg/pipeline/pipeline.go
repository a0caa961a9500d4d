// Package pipeline provides the core triage pipeline for bugscope.
//
// The pipeline runs in four stages:
//
//  1. Fetch: retrieve flat bug records from Bugzilla
//  2. Build: assemble the blocks graph and locate the root tracker
//  3. Analyze: classify bugs as reachable or unreachable and attribute
//     them to projects
//  4. Render: produce the requested output artifacts
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(client, logger)
//	opts := pipeline.Options{
//	    Component: "Graphics: WebRender",
//	    Formats:   []string{pipeline.FormatHTML},
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bugscope/bugscope/pkg/bugzilla"
	"github.com/bugscope/bugscope/pkg/tracker"
)

// Default query parameters. These mirror the WebRender triage setup the
// tool was built for; all are overridable via flags or config.
const (
	DefaultProduct    = "Core"
	DefaultComponent  = "Graphics: WebRender"
	DefaultResolution = "---"
)

// Format constants for output artifacts.
const (
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Artifact names used as keys in [Result.Artifacts].
const (
	ArtifactUnreachable = "unreachable.html"
	ArtifactProjects    = "projects.html"
	ArtifactDOT         = "bugs.dot"
	ArtifactSVG         = "bugs.svg"
)

// Fetcher supplies flat bug records. [bugzilla.Client] is the production
// implementation; tests substitute fakes.
type Fetcher interface {
	FetchBugs(ctx context.Context, q bugzilla.Query, refresh bool) (records []tracker.Record, fromCache bool, err error)
	BaseURL() string
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Query options
	Product    string `json:"product,omitempty"`
	Component  string `json:"component,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	RootAlias  string `json:"root_alias,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the assembled issue graph.
	Graph *tracker.Graph

	// Report is the triage report derived from the graph.
	Report *tracker.Report

	// Artifacts contains rendered outputs keyed by artifact file name.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BugCount    int
	EdgeCount   int
	FetchTime   time.Duration
	BuildTime   time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit bool // Whether bug records came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: html, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Product == "" {
		o.Product = DefaultProduct
	}
	if o.Component == "" {
		o.Component = DefaultComponent
	}
	if o.Resolution == "" {
		o.Resolution = DefaultResolution
	}
	if o.RootAlias == "" {
		o.RootAlias = tracker.DefaultRootAlias
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Query returns the Bugzilla query for these options.
func (o *Options) Query() bugzilla.Query {
	return bugzilla.Query{
		Product:    o.Product,
		Component:  o.Component,
		Resolution: o.Resolution,
	}
}
