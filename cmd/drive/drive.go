// Package drive provides CLI commands for Drive spreadsheet operations.
package drive

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/observon/sheetsight/internal/config"
	drivepkg "github.com/observon/sheetsight/internal/drive"
	"github.com/observon/sheetsight/internal/output"
)

// NewCommand returns the drive command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "List and download Drive spreadsheets",
		Long:  "List Google Sheets visible to the service account and export them as .xlsx files.",
	}

	cmd.AddCommand(newLsCommand())
	cmd.AddCommand(newGetCommand())

	return cmd
}

func requireClient(ctx context.Context) (*drivepkg.Client, error) {
	cred, err := config.Credential()
	if err != nil {
		return nil, err
	}
	return drivepkg.Authenticate(ctx, cred)
}

func newLsCommand() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List spreadsheets in Drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			ctx := cmd.Context()

			client, err := requireClient(ctx)
			if err != nil {
				return err
			}

			if folderID == "" {
				folderID = config.FolderID()
			}

			files, err := client.ListSpreadsheets(ctx, folderID)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.NewWriter().WriteJSON(files)
			}

			if len(files) == 0 {
				fmt.Println("No spreadsheets found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "NAME\tID\n")
			for _, f := range files {
				fmt.Fprintf(w, "%s\t%s\n", color.New(color.FgGreen).Sprint(f.Name), f.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Restrict listing to one Drive folder ID")
	return cmd
}

func newGetCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "get <file-id>",
		Short: "Export a spreadsheet to a local .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			ctx := cmd.Context()

			client, err := requireClient(ctx)
			if err != nil {
				return err
			}

			file, err := client.GetFile(ctx, args[0])
			if err != nil {
				return err
			}

			data, err := client.ExportSpreadsheet(ctx, file.ID)
			if err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = file.Name + ".xlsx"
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("could not write %s: %w", outputPath, err)
			}

			if jsonFlag {
				return output.NewWriter().WriteJSON(map[string]any{
					"file": file,
					"path": outputPath,
					"size": len(data),
				})
			}

			fmt.Printf("Downloaded %q to %s (%s)\n", file.Name, outputPath, drivepkg.FormatSize(int64(len(data))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Local output path (default: <name>.xlsx)")
	return cmd
}
