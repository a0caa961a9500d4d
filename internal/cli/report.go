package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bugscope/bugscope/pkg/pipeline"
)

// reportCommand creates the report command, the main entry point of the
// tool.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		qo         queryOpts
		formatsStr string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a triage report from the issue graph",
		Long: `Generate a triage report from the issue graph.

The report command fetches all open bugs in the configured component,
builds the blocks dependency graph rooted at the tracker bug, and writes
two HTML pages: the list of bugs that do not block the tracker, and the
project overview sorted by severity. DOT and SVG graph exports are
available via --format.

Query responses are cached for 15 minutes; use --refresh to force a
fresh fetch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, baseURL, cfg, err := resolveOptions(&qo)
			if err != nil {
				return err
			}

			if formatsStr != "" {
				opts.Formats = parseFormats(formatsStr)
			} else if len(cfg.Formats) > 0 {
				opts.Formats = cfg.Formats
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			if output == "" {
				output = cfg.Output
			}
			if output == "" {
				output = "."
			}

			return c.runReport(cmd.Context(), opts, baseURL, output, qo.noCache)
		},
	}

	addQueryFlags(cmd, &qo)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default current directory)")

	return cmd
}

// runReport executes the pipeline and writes the artifacts.
func (c *CLI) runReport(ctx context.Context, opts pipeline.Options, baseURL, output string, noCache bool) error {
	runner := c.newRunner(baseURL, noCache)
	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Generating report...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Report failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Report complete: %d bugs, %d projects", result.Stats.BugCount, result.Report.ProjectCount()))

	printSuccess("Report generated")
	printStats(result.Stats.BugCount, result.Stats.EdgeCount, result.CacheInfo.FetchHit)
	printNewline()
	printProjectTable(result.Report)
	printDetail("%d bugs attributed across %d projects", result.Report.TotalProjectBugs, result.Report.ProjectCount())
	printDetail("%d bugs do not block the tracker", result.Report.UnreachableCount())
	printNewline()
	for _, p := range paths {
		printFile(p)
	}
	if result.Report.UnreachableCount() > 0 {
		printNewline()
		printNextStep("Browse unreachable bugs", appName+" browse")
	}
	return nil
}

// writeArtifacts writes each artifact into dir and returns the written
// paths in stable name order.
func writeArtifacts(artifacts map[string][]byte, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, artifacts[name], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
