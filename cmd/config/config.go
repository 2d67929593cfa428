// Package config provides the "sheetsight config" command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configpkg "github.com/observon/sheetsight/internal/config"
	"github.com/observon/sheetsight/internal/output"
)

const sampleConfig = `# sheetsight configuration
provider: openai
model: gpt-4

# Service account credential: a key file path or the JSON itself.
# The GOOGLE_CREDENTIALS_JSON environment variable takes precedence.
#credentials: /path/to/service-account.json

# Restrict listings to one Drive folder.
#folder_id: ""

api_keys:
  # Environment variables OPENAI_API_KEY / GEMINI_API_KEY take precedence.
  openai: ""
  gemini: ""

ollama:
  host: http://localhost:11434

output:
  color: true
`

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sheetsight configuration",
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newShowCommand())

	return cmd
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := configpkg.Dir()
			if err := os.MkdirAll(dir, 0700); err != nil {
				return fmt.Errorf("could not create %s: %w", dir, err)
			}

			path := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists — edit it directly", path)
			}

			if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
				return fmt.Errorf("could not write %s: %w", path, err)
			}

			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configpkg.Load()
			if err != nil {
				return err
			}

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.NewWriter().WriteJSON(cfg)
			}

			fmt.Printf("provider:  %s\n", cfg.Provider)
			fmt.Printf("model:     %s\n", cfg.Model)
			fmt.Printf("folder_id: %s\n", orUnset(cfg.FolderID))
			fmt.Printf("credentials configured: %v\n", cfg.Credentials != "" || os.Getenv("GOOGLE_CREDENTIALS_JSON") != "")
			return nil
		},
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
