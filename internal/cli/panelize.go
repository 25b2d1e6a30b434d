package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelprep/panelprep/pkg/panel"
	"github.com/panelprep/panelprep/pkg/pipeline"
)

// panelizeOpts holds the command-line flags for the panelize command.
type panelizeOpts struct {
	repeatX    int    // boards across the panel width, 0 prompts
	repeatY    int    // boards across the panel height, 0 prompts
	configPath string // settings file override
	mousebites string // mousebite location codes
	keepWork   bool   // retain the extraction directory
}

// panelizeCommand creates the panelize command, the main entry point of the
// tool.
func (c *CLI) panelizeCommand() *cobra.Command {
	var opts panelizeOpts

	cmd := &cobra.Command{
		Use:   "panelize <archive.zip>",
		Short: "Compute a panel layout for a zipped gerber export",
		Long: `Compute a panel layout for a zipped gerber export.

The archive is extracted, the board files are matched against the configured
filename conventions, and the board size is measured from the profile layer.
The board is then repeated into a framed panel and the .gerberset descriptor
and report.txt are written next to the archive.

Repeat counts are prompted interactively unless both -x and -y are given.

Mousebite locations are two-letter codes: the first letter is the alignment
(c center, x toward origin, v away from origin), the second the board edge
(b bottom, t top, l left, r right).

Examples:
  panelprep panelize board.zip                   # prompt for repeat counts
  panelprep panelize -x 3 -y 2 board.zip         # 3 x 2 panel, no prompt
  panelprep panelize --mousebites cb,ct,cl,cr board.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPanelize(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.repeatX, "repeat-x", "x", 0, "boards across the panel width (prompts if omitted)")
	cmd.Flags().IntVarP(&opts.repeatY, "repeat-y", "y", 0, "boards across the panel height (prompts if omitted)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "settings file (default: "+appName+".toml if present)")
	cmd.Flags().StringVar(&opts.mousebites, "mousebites", panel.DefaultMousebiteSpec, "comma-separated mousebite location codes")
	cmd.Flags().BoolVar(&opts.keepWork, "keep-work", false, "keep the extraction working directory")

	return cmd
}

func (c *CLI) runPanelize(ctx context.Context, archive string, opts panelizeOpts) error {
	settings, source, err := c.loadSettings(opts.configPath)
	if err != nil {
		return err
	}
	if source != "" {
		c.Logger.Debugf("Settings loaded from %s", source)
	}

	runner := pipeline.NewRunner(settings, TerminalPrompter{}, c.Logger)

	printInfo("Panelizing %s", filepath.Base(archive))

	// The spinner would fight the interactive prompt for the terminal, so it
	// only runs when both repeat counts are already known.
	var spin *Spinner
	if opts.repeatX != 0 && opts.repeatY != 0 {
		spin = newSpinner(ctx, "computing panel layout")
		spin.Start()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		ArchivePath:   archive,
		RepeatX:       opts.repeatX,
		RepeatY:       opts.repeatY,
		MousebiteSpec: opts.mousebites,
		KeepWork:      opts.keepWork,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	printPanelSummary(result)
	printSuccess("Panel descriptor written (%d boards)", result.Layout.BoardCount())
	return nil
}

// printPanelSummary renders the run result.
func printPanelSummary(result *pipeline.Result) {
	l := result.Layout
	p := l.Precision

	printNewline()
	printKeyValue("Board", fmt.Sprintf("%.*f x %.*f mm", p, l.Board.Width, p, l.Board.Height))
	printKeyValue("Repeat", fmt.Sprintf("%d x %d", l.RepeatX, l.RepeatY))
	printKeyValue("Panel", fmt.Sprintf("%.*f x %.*f mm", p, l.TotalWidth, p, l.TotalHeight))
	printKeyValue("Surface area", fmt.Sprintf("%.*f dm²", p+1, l.SurfaceArea))

	if len(result.Warnings) > 0 {
		printNewline()
		for _, warning := range result.Warnings {
			printWarning("%s", warning)
		}
	}

	printNewline()
	printFile(result.Outputs.GerbersetPath)
	printFile(result.Outputs.ReportPath)
	if result.WorkDir != "" {
		printDetail("working directory kept at %s", result.WorkDir)
	}
	printDetail("extract %s · calculate %s · write %s",
		result.Stats.ExtractTime.Round(time.Millisecond),
		result.Stats.CalculateTime.Round(time.Millisecond),
		result.Stats.WriteTime.Round(time.Millisecond))
}
