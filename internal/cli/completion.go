package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for backlogtree.

To load completions:

Bash:
  $ source <(backlogtree completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ backlogtree completion bash > /etc/bash_completion.d/backlogtree
  # macOS:
  $ backlogtree completion bash > $(brew --prefix)/etc/bash_completion.d/backlogtree

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ backlogtree completion zsh > "${fpath[1]}/_backlogtree"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ backlogtree completion fish | source

  # To load completions for each session, execute once:
  $ backlogtree completion fish > ~/.config/fish/completions/backlogtree.fish

PowerShell:
  PS> backlogtree completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> backlogtree completion powershell > backlogtree.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Completion must work before a config file exists.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}

// writeCompletion generates the script for shell.
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}
