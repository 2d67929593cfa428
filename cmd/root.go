// Package cmd contains all CLI commands for the sheetsight binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdask "github.com/observon/sheetsight/cmd/ask"
	"github.com/observon/sheetsight/cmd/completion"
	cmdconfig "github.com/observon/sheetsight/cmd/config"
	"github.com/observon/sheetsight/cmd/doctor"
	cmddrive "github.com/observon/sheetsight/cmd/drive"
	"github.com/observon/sheetsight/cmd/insight"
	"github.com/observon/sheetsight/cmd/menu"
	"github.com/observon/sheetsight/cmd/version"
	cmdwatch "github.com/observon/sheetsight/cmd/watch"
	"github.com/observon/sheetsight/internal/config"
)

var (
	jsonOutput   bool
	noColor      bool
	modelName    string
	providerName string
)

// NewRootCommand creates and returns the root cobra command with all
// subcommands registered. Running it without a subcommand starts the
// interactive menu.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetsight",
		Short: "Analyze Google Drive spreadsheets with AI",
		Long: `sheetsight — spreadsheet analysis from your terminal.

Lists and loads Google Sheets from Drive with a read-only service account,
summarizes them, and asks an AI model for insights or answers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return menu.Start(cmd)
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", config.DefaultModel(), "Model identifier override")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", config.DefaultProvider(), "AI provider: openai | gemini | ollama")

	// Register subcommands
	rootCmd.AddCommand(cmddrive.NewCommand())
	rootCmd.AddCommand(insight.NewCommand())
	rootCmd.AddCommand(cmdask.NewCommand())
	rootCmd.AddCommand(menu.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(version.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
