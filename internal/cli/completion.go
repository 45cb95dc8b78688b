package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for stockcheck.

To load completions for your shell:

Bash:
  # To load completions for each session, execute once:
  # Linux:
  stockcheck completion bash > /etc/bash_completion.d/stockcheck
  # macOS:
  stockcheck completion bash > /usr/local/etc/bash_completion.d/stockcheck

  # Or add to your ~/.bashrc or ~/.bash_profile:
  source <(stockcheck completion bash)

Zsh:
  # To load completions for each session, execute once:
  stockcheck completion zsh > "${fpath[1]}/_stockcheck"

  # Or add to your ~/.zshrc:
  source <(stockcheck completion zsh)

  # You may need to force rebuild the completion cache:
  rm -f ~/.zcompdump
  compinit

Fish:
  # To load completions for each session, execute once:
  stockcheck completion fish > ~/.config/fish/completions/stockcheck.fish

  # Or add to your ~/.config/fish/config.fish:
  stockcheck completion fish | source

PowerShell:
  # To load completions for each session, run:
  stockcheck completion powershell | Out-String | Invoke-Expression

  # Or add to your PowerShell profile:
  # (Microsoft.PowerShell_profile.ps1 or profile.ps1)
  stockcheck completion powershell | Out-String | Invoke-Expression`,
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
		return fmt.Errorf("unsupported shell type: %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
