package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugscope/bugscope/pkg/pipeline"
)

// graphCommand creates the graph command for exporting the issue graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		qo         queryOpts
		formatsStr string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the issue graph as DOT or SVG",
		Long: `Export the issue graph as Graphviz DOT or rendered SVG.

The root tracker gets a double outline, project bugs are filled blue,
and bugs with no path to the tracker are dashed red. Arrows follow the
blocks direction, pointing toward the root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, baseURL, cfg, err := resolveOptions(&qo)
			if err != nil {
				return err
			}

			if formatsStr == "" {
				opts.Formats = []string{pipeline.FormatDOT}
			} else {
				opts.Formats = parseFormats(formatsStr)
			}
			for _, f := range opts.Formats {
				if f != pipeline.FormatDOT && f != pipeline.FormatSVG {
					return fmt.Errorf("invalid graph format: %q (must be dot or svg)", f)
				}
			}

			if output == "" {
				output = cfg.Output
			}
			if output == "" {
				output = "."
			}

			return c.runGraph(cmd.Context(), opts, baseURL, output, qo.noCache)
		},
	}

	addQueryFlags(cmd, &qo)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default current directory)")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, baseURL, output string, noCache bool) error {
	runner := c.newRunner(baseURL, noCache)
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Exporting graph...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, output)
	if err != nil {
		return err
	}

	printSuccess("Graph exported")
	printStats(result.Stats.BugCount, result.Stats.EdgeCount, result.CacheInfo.FetchHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
