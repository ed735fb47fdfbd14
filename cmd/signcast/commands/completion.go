package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for signcast.

To load completions:

Bash:
  # Linux:
  $ signcast completion bash > /etc/bash_completion.d/signcast
  # macOS:
  $ signcast completion bash > $(brew --prefix)/etc/bash_completion.d/signcast

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  # Linux:
  $ signcast completion zsh > "${fpath[1]}/_signcast"
  # macOS:
  $ signcast completion zsh > $(brew --prefix)/share/zsh/site-functions/_signcast

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ signcast completion fish > ~/.config/fish/completions/signcast.fish

PowerShell:
  PS> signcast completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> signcast completion powershell > signcast.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}
