package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// completionGenerators maps shell names to cobra's script generators.
// Fish gets command descriptions; so does PowerShell via the WithDesc
// variant.
var completionGenerators = map[string]func(*cobra.Command, io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// completionCommand creates the completion command. Completions cover all
// subcommands and flags, which helps with the longer ones like
// --orientation and --theme-dir.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for sosatree on stdout.

Load it directly for the current session:

  source <(sosatree completion bash)
  sosatree completion fish | source

Or install it permanently, for example:

  sosatree completion bash > /etc/bash_completion.d/sosatree
  sosatree completion zsh  > "${fpath[1]}/_sosatree"
  sosatree completion fish > ~/.config/fish/completions/sosatree.fish

For PowerShell, pipe through Invoke-Expression or save the output and
source it from your profile.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), os.Stdout)
		},
	}
}
