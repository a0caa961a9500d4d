package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bugscope/bugscope/pkg/pipeline"
)

// browseCommand creates the browse command for the interactive bug list.
func (c *CLI) browseCommand() *cobra.Command {
	var qo queryOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse bugs that do not block the tracker",
		Long: `Interactively browse bugs that do not block the tracker.

The browse command fetches the issue graph and opens a list of every bug
with no blocks path to the root tracker. Select a bug to open its
Bugzilla page in the browser. These are the bugs most likely to need
triage: they are open in the component but invisible to the tracker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, baseURL, _, err := resolveOptions(&qo)
			if err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), opts, baseURL, qo.noCache)
		},
	}

	addQueryFlags(cmd, &qo)

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, baseURL string, noCache bool) error {
	runner := c.newRunner(baseURL, noCache)
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Fetching bugs...")
	spinner.Start()

	result, err := runner.FetchAndAnalyze(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()

	if result.Report.UnreachableCount() == 0 {
		printSuccess("Every open bug blocks the tracker. Nothing to triage.")
		return nil
	}

	model := NewBugListModel(result.Report.Unreachable)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	if m, ok := final.(BugListModel); ok && m.Selected != nil {
		printInfo("Opening %s", m.Selected.URL)
		if err := openBrowser(m.Selected.URL); err != nil {
			printWarning("Could not open browser: %v", err)
			printDetail("%s", m.Selected.URL)
		}
	}
	return nil
}

// openBrowser opens rawURL in the default browser.
func openBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
