// Package menu provides the "sheetsight menu" interactive command.
package menu

import (
	"github.com/spf13/cobra"

	"github.com/observon/sheetsight/internal/ai"
	"github.com/observon/sheetsight/internal/analysis"
	"github.com/observon/sheetsight/internal/config"
	"github.com/observon/sheetsight/internal/drive"
	menupkg "github.com/observon/sheetsight/internal/menu"
)

// NewCommand creates the "menu" command.
func NewCommand() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive analysis menu",
		Long: `Start the interactive session: list spreadsheets, load one,
and run AI analysis against it, with one loaded table held in memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if folderID == "" {
				folderID = config.FolderID()
			}
			return start(cmd, folderID)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Restrict listing to one Drive folder ID")
	return cmd
}

// Start builds the session from configuration and runs the menu loop.
// Missing credentials or API keys are fatal here, before the loop starts.
func Start(cmd *cobra.Command) error {
	return start(cmd, config.FolderID())
}

func start(cmd *cobra.Command, folderID string) error {
	providerName, _ := cmd.Flags().GetString("provider")
	modelName, _ := cmd.Flags().GetString("model")
	ctx := cmd.Context()

	cred, err := config.Credential()
	if err != nil {
		return err
	}

	client, err := drive.Authenticate(ctx, cred)
	if err != nil {
		return err
	}

	provider, err := ai.NewProvider(providerName, modelName)
	if err != nil {
		return err
	}

	session := menupkg.NewSession(client, analysis.NewAnalyst(provider), folderID)
	return session.Run(ctx)
}
