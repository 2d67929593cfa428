// Package doctor provides the "sheetsight doctor" command for checking
// configuration health.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/observon/sheetsight/internal/config"
	"github.com/observon/sheetsight/internal/drive"
	"github.com/observon/sheetsight/internal/output"
)

// Check represents a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and dependencies",
		Long:  "Run diagnostic checks to verify sheetsight is properly configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return output.NewWriter().WriteJSON(checks)
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Println("sheetsight doctor")
			fmt.Println("=================")
			fmt.Println()

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Printf("  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Println()
			fmt.Printf("  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}
}

func runChecks() []Check {
	var checks []Check

	checks = append(checks, Check{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})

	// Config directory and file
	dir := config.Dir()
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		checks = append(checks, Check{Name: "Config Directory", Status: "ok", Message: dir})
	} else {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "warning",
			Message: fmt.Sprintf("%s not found — run 'sheetsight config init'", dir),
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err == nil {
		checks = append(checks, Check{Name: "Config File", Status: "ok", Message: filepath.Join(dir, "config.yaml")})
	} else {
		checks = append(checks, Check{Name: "Config File", Status: "warning", Message: "Not found — run 'sheetsight config init'"})
	}

	// Google credential: present and locally valid
	cred, err := config.Credential()
	if err != nil {
		checks = append(checks, Check{Name: "Google Credential", Status: "error", Message: err.Error()})
	} else if _, err := drive.ResolveCredential(cred); err != nil {
		checks = append(checks, Check{Name: "Google Credential", Status: "error", Message: err.Error()})
	} else {
		checks = append(checks, Check{Name: "Google Credential", Status: "ok", Message: "Service account key parses"})
	}

	// AI provider key
	if os.Getenv("OPENAI_API_KEY") != "" {
		checks = append(checks, Check{Name: "AI Provider (OpenAI)", Status: "ok", Message: "OPENAI_API_KEY set"})
	} else if os.Getenv("GEMINI_API_KEY") != "" {
		checks = append(checks, Check{Name: "AI Provider (Gemini)", Status: "ok", Message: "GEMINI_API_KEY set"})
	} else if _, err := exec.LookPath("ollama"); err == nil {
		checks = append(checks, Check{Name: "AI Provider (Ollama)", Status: "ok", Message: "Ollama found in PATH"})
	} else {
		checks = append(checks, Check{
			Name:    "AI Provider",
			Status:  "warning",
			Message: "No API key set — set OPENAI_API_KEY or GEMINI_API_KEY for analysis",
		})
	}

	// Folder scope
	if folder := config.FolderID(); folder != "" {
		checks = append(checks, Check{Name: "Drive Folder Scope", Status: "ok", Message: folder})
	} else {
		checks = append(checks, Check{Name: "Drive Folder Scope", Status: "ok", Message: "Unrestricted (all visible spreadsheets)"})
	}

	return checks
}
