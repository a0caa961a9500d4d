package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bugscope/bugscope/pkg/render"
	"github.com/bugscope/bugscope/pkg/tracker"
)

// Runner encapsulates pipeline execution. It is stateless except for
// the fetcher and logger, so multiple goroutines can safely share one
// Runner with different options.
type Runner struct {
	Fetcher Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner with the given fetcher.
// If logger is nil, the default logger is used.
func NewRunner(f Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher: f,
		Logger:  logger,
	}
}

// Execute runs the complete fetch → build → analyze → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	// Defaults must be applied here: FetchAndAnalyze receives a copy, and
	// renderArtifacts below reads the defaulted formats.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result, err := r.FetchAndAnalyze(ctx, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	if err := r.renderArtifacts(ctx, result, opts); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchAndAnalyze runs the fetch, build, and analyze stages without
// rendering. The browse TUI uses this to get a report directly.
func (r *Runner) FetchAndAnalyze(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Logger != nil {
		r.Logger = opts.Logger
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	records, fetchHit, err := r.Fetcher.FetchBugs(ctx, opts.Query(), opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Stats.FetchTime = time.Since(fetchStart)
	result.CacheInfo.FetchHit = fetchHit

	r.Logger.Info("fetched bugs",
		"count", len(records),
		"cached", fetchHit,
		"duration", result.Stats.FetchTime)

	// Stage 2: Build
	buildStart := time.Now()
	g, err := tracker.Build(records, opts.RootAlias)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.BugCount = g.Size()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("built graph",
		"bugs", g.Size(),
		"edges", g.EdgeCount(),
		"root", g.Root())

	// Stage 3: Analyze
	analyzeStart := time.Now()
	report := tracker.Analyze(g, r.Fetcher.BaseURL())
	result.Report = report
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	r.Logger.Info("analyzed graph",
		"projects", report.ProjectCount(),
		"unreachable", report.UnreachableCount())

	return result, nil
}

func (r *Runner) renderArtifacts(ctx context.Context, result *Result, opts Options) error {
	now := time.Now()
	var dot string

	for _, format := range opts.Formats {
		switch format {
		case FormatHTML:
			data, err := render.UnreachableHTML(result.Report, now)
			if err != nil {
				return err
			}
			result.Artifacts[ArtifactUnreachable] = data

			data, err = render.ProjectsHTML(result.Report, now)
			if err != nil {
				return err
			}
			result.Artifacts[ArtifactProjects] = data

		case FormatDOT:
			if dot == "" {
				dot = render.ToDOT(result.Graph)
			}
			result.Artifacts[ArtifactDOT] = []byte(dot)

		case FormatSVG:
			if dot == "" {
				dot = render.ToDOT(result.Graph)
			}
			svg, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return err
			}
			result.Artifacts[ArtifactSVG] = svg
		}
	}
	return nil
}
