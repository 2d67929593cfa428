// Package insight provides the "sheetsight insight" auto-analysis command.
package insight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/observon/sheetsight/internal/ai"
	"github.com/observon/sheetsight/internal/analysis"
	"github.com/observon/sheetsight/internal/config"
	"github.com/observon/sheetsight/internal/drive"
	"github.com/observon/sheetsight/internal/output"
	"github.com/observon/sheetsight/internal/prompts"
	"github.com/observon/sheetsight/internal/xlsx"
)

// NewCommand creates the "insight" command.
func NewCommand() *cobra.Command {
	var (
		sheet      string
		presetName string
		extra      string
	)

	cmd := &cobra.Command{
		Use:   "insight <file-id-or-path>",
		Short: "AI-powered analysis of a spreadsheet",
		Long: `Loads a spreadsheet — a Drive file ID or a local .xlsx path — and asks
the AI model for structured insights: trends, anomalies, and takeaways.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			providerName, _ := cmd.Flags().GetString("provider")
			modelName, _ := cmd.Flags().GetString("model")
			ctx := cmd.Context()

			table, name, err := loadTable(ctx, args[0], sheet)
			if err != nil {
				return err
			}

			instruction := extra
			if presetName != "" {
				loaded, err := prompts.Load(prompts.DefaultPath())
				if err != nil {
					return err
				}
				p, err := prompts.Get(loaded, presetName)
				if err != nil {
					return err
				}
				instruction = strings.TrimSpace(p.Instruction + "\n" + extra)
			}

			provider, err := ai.NewProvider(providerName, modelName)
			if err != nil {
				return err
			}

			answer, err := analysis.NewAnalyst(provider).Ask(ctx, analysis.Summarize(table), instruction, analysis.ModeAuto)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.NewWriter().WriteJSON(map[string]any{
					"file":     name,
					"sheet":    table.SheetName,
					"rows":     table.RowCount(),
					"columns":  table.Columns,
					"analysis": answer,
				})
			}

			fmt.Println(answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Analyze a specific sheet (default: first sheet)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Named prompt preset to steer the analysis")
	cmd.Flags().StringVar(&extra, "prompt", "", "Additional analysis instructions")

	return cmd
}

// loadTable resolves a reference to a loaded table: a local .xlsx path is
// read directly, anything else is treated as a Drive file ID and exported.
func loadTable(ctx context.Context, ref, sheet string) (*xlsx.Table, string, error) {
	if strings.HasSuffix(strings.ToLower(ref), ".xlsx") {
		if _, err := os.Stat(ref); err == nil {
			wb, err := xlsx.ReadFile(ref)
			if err != nil {
				return nil, "", err
			}
			t, err := wb.Table(sheet)
			return t, ref, err
		}
	}

	cred, err := config.Credential()
	if err != nil {
		return nil, "", err
	}
	client, err := drive.Authenticate(ctx, cred)
	if err != nil {
		return nil, "", err
	}

	file, err := client.GetFile(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	data, err := client.ExportSpreadsheet(ctx, file.ID)
	if err != nil {
		return nil, "", err
	}

	wb, err := xlsx.ReadBytes(data)
	if err != nil {
		return nil, "", err
	}
	t, err := wb.Table(sheet)
	return t, file.Name, err
}
