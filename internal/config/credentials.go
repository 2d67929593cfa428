package config

import (
	"fmt"
	"os"
)

// Credential returns the Google service-account credential from the
// GOOGLE_CREDENTIALS_JSON environment variable, falling back to the config
// file. The value may be a path to a key file or the JSON content itself.
func Credential() (string, error) {
	if v := os.Getenv("GOOGLE_CREDENTIALS_JSON"); v != "" {
		return v, nil
	}
	cfg, err := Load()
	if err == nil && cfg.Credentials != "" {
		return cfg.Credentials, nil
	}
	return "", fmt.Errorf("GOOGLE_CREDENTIALS_JSON is not set — export your service account key (path or JSON) or add 'credentials' to ~/.sheetsight/config.yaml")
}

// FolderID returns the optional Drive folder restricting listing scope.
func FolderID() string {
	if v := os.Getenv("GOOGLE_DRIVE_FOLDER_ID"); v != "" {
		return v
	}
	cfg, err := Load()
	if err == nil {
		return cfg.FolderID
	}
	return ""
}

// GetAPIKey retrieves the API key for the given provider, checking
// environment variables first and falling back to the config file.
func GetAPIKey(provider string) (string, error) {
	switch provider {
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key, nil
		}
		cfg, err := Load()
		if err == nil && cfg.APIKeys.OpenAI != "" {
			return cfg.APIKeys.OpenAI, nil
		}
		return "", fmt.Errorf("OPENAI_API_KEY not found — set it via environment variable or in ~/.sheetsight/config.yaml")

	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key, nil
		}
		cfg, err := Load()
		if err == nil && cfg.APIKeys.Gemini != "" {
			return cfg.APIKeys.Gemini, nil
		}
		return "", fmt.Errorf("GEMINI_API_KEY not found — set it via environment variable or in ~/.sheetsight/config.yaml")

	case "ollama":
		// Local provider, no key required.
		return "", nil

	default:
		return "", fmt.Errorf("no API key management for provider %q", provider)
	}
}
