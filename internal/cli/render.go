package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/pipeline"
	"github.com/sosatree/sosatree/pkg/theme"
)

// renderCommand creates the render command: turn a saved chart.json into
// output artifacts without recomputing the layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [chart.json]",
		Short: "Render a saved chart.json",
		Long: `Render a saved chart.json into SVG, DOT, or PNG output.

The chart file carries its own geometry, so no GEDCOM file is needed.
Produce one with 'layout' or by reusing the json artifact of 'chart'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if opts.ThemeDir == "" {
				opts.ThemeDir = themeDir()
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "theme name (classic, or a TOML theme in the theme dir)")
	cmd.Flags().StringVar(&opts.ThemeDir, "theme-dir", "", "directory with TOML theme files")
	cmd.Flags().BoolVar(&opts.NoLines, "no-lines", false, "suppress connector lines in SVG output")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include Sosa numbers and sex in DOT/PNG labels")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, chartPath string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	ch, err := chart.ReadFile(chartPath)
	if err != nil {
		return err
	}
	th, err := theme.Load(opts.Theme, opts.ThemeDir)
	if err != nil {
		return err
	}

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, ch, th, opts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s (%s, %d generations, %s)",
		chartPath, ch.RootName, ch.Generations, ch.Orientation)
	printChartStats(0, len(ch.Boxes), ch.Width, ch.Height, cached)

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     chartPath,
		output:    output,
	})
}
