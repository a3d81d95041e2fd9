package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/gedcom"
	"github.com/sosatree/sosatree/pkg/pipeline"
)

// pickCommand creates the pick command: interactively choose a chart root
// from the individuals in a GEDCOM file, then render the chart.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "pick [file.ged]",
		Short: "Interactively choose a chart root, then render",
		Long: `Interactively choose a chart root, then render.

Shows the individuals in the file in a filterable list. Selecting one runs
the chart pipeline with that individual as root, same as
'chart --root <xref>'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if opts.ThemeDir == "" {
				opts.ThemeDir = themeDir()
			}
			return c.runPick(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.Generations, "generations", "g", opts.Generations, "generations to show (2-8)")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "portrait, landscape, oldest-at-top, oldest-at-bottom")
	cmd.Flags().BoolVar(&opts.Clamp, "clamp", false, "clamp out-of-range generations/orientation instead of failing")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "theme name (classic, or a TOML theme in the theme dir)")
	cmd.Flags().StringVar(&opts.ThemeDir, "theme-dir", "", "directory with TOML theme files")
	cmd.Flags().BoolVar(&opts.NoLines, "no-lines", false, "suppress connector lines in SVG output")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include Sosa numbers and sex in DOT/PNG labels")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	tree, err := gedcom.ParseFile(opts.Source)
	if err != nil {
		return err
	}
	individuals := tree.Individuals()
	if len(individuals) == 0 {
		return errors.New(errors.ErrCodeInvalidGedcom, "no individuals in %s", opts.Source)
	}

	model := NewIndividualListModel(individuals)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	selected := final.(IndividualListModel).Selected
	if selected == nil {
		printInfo("No selection made")
		return nil
	}

	printInfo("Selected %s (%s)", selected.Xref, selected.Name)
	opts.Root = selected.Xref
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	return c.runChart(ctx, opts, output, noCache)
}
