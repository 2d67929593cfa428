// Package watch provides the "sheetsight watch" command for re-analyzing
// downloaded spreadsheets when they change.
package watch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/observon/sheetsight/internal/ai"
	"github.com/observon/sheetsight/internal/analysis"
	watchpkg "github.com/observon/sheetsight/internal/watch"
	"github.com/observon/sheetsight/internal/xlsx"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var presetInstruction string

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Re-analyze local spreadsheets on change",
		Long: `Watches a directory of downloaded .xlsx files (see 'sheetsight drive get')
and prints a fresh AI analysis whenever one is created or modified.
Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerName, _ := cmd.Flags().GetString("provider")
			modelName, _ := cmd.Flags().GetString("model")
			ctx := cmd.Context()

			provider, err := ai.NewProvider(providerName, modelName)
			if err != nil {
				return err
			}
			analyst := analysis.NewAnalyst(provider)

			w, err := watchpkg.New(args[0], func(path string) error {
				wb, err := xlsx.ReadFile(path)
				if err != nil {
					return err
				}
				table, err := wb.Table("")
				if err != nil {
					return err
				}

				answer, err := analyst.Ask(ctx, analysis.Summarize(table), presetInstruction, analysis.ModeAuto)
				if err != nil {
					return err
				}

				fmt.Printf("\n=== %s ===\n%s\n", path, answer)
				return nil
			})
			if err != nil {
				return err
			}

			return w.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&presetInstruction, "prompt", "", "Additional analysis instructions")
	return cmd
}
