package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/pipeline"
)

// layoutCommand creates the layout command: compute chart geometry and save
// it as a chart.json for later rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [file.ged]",
		Short: "Compute chart geometry and save it as chart.json",
		Long: `Compute chart geometry and save it as chart.json.

The saved file contains box positions, canvas size, and individual labels.
Use 'render' to turn it into SVG, DOT, or PNG output without recomputing
the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			if opts.ThemeDir == "" {
				opts.ThemeDir = themeDir()
			}
			if err := opts.ValidateForParse(); err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <input>.chart.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "xref of the root individual (default: first in file)")
	cmd.Flags().IntVarP(&opts.Generations, "generations", "g", opts.Generations, "generations to show (2-8)")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "portrait, landscape, oldest-at-top, oldest-at-bottom")
	cmd.Flags().BoolVar(&opts.Clamp, "clamp", false, "clamp out-of-range generations/orientation instead of failing")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "theme name (box geometry shapes the layout)")
	cmd.Flags().StringVar(&opts.ThemeDir, "theme-dir", "", "directory with TOML theme files")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	// Layout only: drop the render stage.
	opts.Formats = []string{pipeline.FormatJSON}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if output == "" {
		output = basePath("", opts.Source) + ".chart.json"
	}
	if err := chart.WriteFile(result.Chart, output); err != nil {
		return err
	}

	printSuccess("Computed layout for %s (%s, %d generations, %s)",
		opts.Source, result.Chart.RootName, result.Chart.Generations, result.Chart.Orientation)
	printChartStats(result.Stats.Individuals, result.Stats.Boxes,
		result.Chart.Width, result.Chart.Height, result.CacheInfo.LayoutHit)
	printFile(output)
	fmt.Println()
	printNextStep("Render it", fmt.Sprintf("sosatree render %s", output))
	return nil
}
