// Package ask provides the "sheetsight ask" question-answering command.
package ask

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
	"github.com/observon/sheetsight/internal/xlsx"
)

// NewCommand creates the "ask" command.
func NewCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "ask <question> <file-id-or-path>",
		Short: "Ask a question about a spreadsheet",
		Long:  "Sends a natural language question along with a summary of the spreadsheet to an AI model and prints the answer.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			providerName, _ := cmd.Flags().GetString("provider")
			modelName, _ := cmd.Flags().GetString("model")
			ctx := cmd.Context()

			question := args[0]
			table, name, err := loadTable(ctx, args[1], sheet)
			if err != nil {
				return err
			}

			provider, err := ai.NewProvider(providerName, modelName)
			if err != nil {
				return err
			}

			answer, err := analysis.NewAnalyst(provider).Ask(ctx, analysis.Summarize(table), question, analysis.ModeCustom)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.NewWriter().WriteJSON(map[string]any{
					"file":     name,
					"question": question,
					"answer":   answer,
				})
			}

			fmt.Println(answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Question a specific sheet (default: first sheet)")
	return cmd
}

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
