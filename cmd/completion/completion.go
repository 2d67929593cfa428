// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for sheetsight.

Install instructions:
  Bash:       sheetsight completion bash > /etc/bash_completion.d/sheetsight
              echo 'source <(sheetsight completion bash)' >> ~/.bashrc
  Zsh:        sheetsight completion zsh > ~/.zsh/completions/_sheetsight
  Fish:       sheetsight completion fish > ~/.config/fish/completions/sheetsight.fish
  PowerShell: sheetsight completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# sheetsight bash completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetsight completion bash > /etc/bash_completion.d/sheetsight")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(sheetsight completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# sheetsight zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetsight completion zsh > ~/.zsh/completions/_sheetsight")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# sheetsight fish completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetsight completion fish > ~/.config/fish/completions/sheetsight.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# sheetsight PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetsight completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
