package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sosatree/sosatree/pkg/gedcom"
)

// parseCommand creates the parse command for inspecting GEDCOM files.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse [file.ged]",
		Short: "Parse a GEDCOM file and list its individuals",
		Long: `Parse a GEDCOM file and list its individuals.

Useful for finding the xref of the individual you want as chart root.
Individuals are listed in xref order with their recorded name and sex.
With --output the list is written as a JSON summary instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args[0], limit, output)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n individuals (0 = all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write a JSON summary to this file")

	return cmd
}

// individualSummary is one entry of the parse command's JSON output.
type individualSummary struct {
	Xref       string `json:"xref"`
	Name       string `json:"name"`
	Sex        string `json:"sex,omitempty"`
	HasParents bool   `json:"has_parents"`
}

func (c *CLI) runParse(path string, limit int, output string) error {
	prog := newProgress(c.Logger)
	tree, err := gedcom.ParseFile(path)
	if err != nil {
		return err
	}
	prog.done("parsed " + path)

	individuals := tree.Individuals()
	printSuccess("Parsed %s (%d individuals, %d families)",
		path, len(individuals), tree.FamilyCount())

	if output != "" {
		summaries := make([]individualSummary, 0, len(individuals))
		for _, indi := range individuals {
			summaries = append(summaries, individualSummary{
				Xref:       indi.Xref,
				Name:       indi.Name,
				Sex:        indi.Sex,
				HasParents: indi.HasParents(),
			})
		}
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printFile(output)
		return nil
	}

	shown := individuals
	if limit > 0 && limit < len(individuals) {
		shown = individuals[:limit]
	}
	for _, indi := range shown {
		name := indi.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Println("  " + StyleHighlight.Render(indi.Xref) + " " +
			sexStyle(indi.Sex).Render(name))
	}
	if len(shown) < len(individuals) {
		printDetail("... and %d more", len(individuals)-len(shown))
	}

	if len(individuals) > 0 {
		fmt.Println()
		printNextStep("Render a chart",
			fmt.Sprintf("sosatree chart %s --root %s", path, individuals[0].Xref))
	}
	return nil
}
