package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sosatree/sosatree/pkg/pipeline"
)

// chartCommand creates the chart command: the full parse → layout → render
// pipeline in one step.
func (c *CLI) chartCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "chart [file.ged]",
		Short: "Render a pedigree chart from a GEDCOM file",
		Long: `Render a pedigree chart from a GEDCOM file.

The chart command parses the file, computes box positions for the chosen
root individual and orientation, and renders the result. Without --root the
first individual (by xref order) becomes the chart root; use 'parse' to list
xrefs or 'pick' to choose interactively.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if opts.ThemeDir == "" {
				opts.ThemeDir = themeDir()
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runChart(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "xref of the root individual (default: first in file)")
	cmd.Flags().IntVarP(&opts.Generations, "generations", "g", opts.Generations, "generations to show (2-8)")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "portrait, landscape, oldest-at-top, oldest-at-bottom")
	cmd.Flags().BoolVar(&opts.Clamp, "clamp", false, "clamp out-of-range generations/orientation instead of failing")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "theme name (classic, or a TOML theme in the theme dir)")
	cmd.Flags().StringVar(&opts.ThemeDir, "theme-dir", "", "directory with TOML theme files")
	cmd.Flags().BoolVar(&opts.NoLines, "no-lines", false, "suppress connector lines in SVG output")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include Sosa numbers and sex in DOT/PNG labels")

	return cmd
}

// runChart executes the pipeline and writes the artifacts.
func (c *CLI) runChart(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Charting %s...", opts.Source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Chart failed")
		return err
	}
	spinner.Stop()

	printSuccess("Charted %s (%s, %d generations, %s)",
		opts.Source, result.Chart.RootName, result.Chart.Generations, result.Chart.Orientation)
	printChartStats(result.Stats.Individuals, result.Stats.Boxes,
		result.Chart.Width, result.Chart.Height, result.CacheInfo.RenderHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Source,
		output:    output,
	})
}
