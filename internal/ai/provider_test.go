package ai

import (
	"strings"
	"testing"
)

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider("watson", "")
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("expected unknown provider error, got %v", err)
	}
}

func TestNewProviderMissingKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // isolate from any real config file
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewProvider("openai", "")
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected error naming OPENAI_API_KEY, got %v", err)
	}

	_, err = NewProvider("gemini", "")
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected error naming GEMINI_API_KEY, got %v", err)
	}
}

func TestNewProviderOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	p, err := NewProvider("openai", "gpt-4")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("expected openai, got %q", p.Name())
	}
}

func TestNewProviderOllamaNeedsNoKey(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")

	p, err := NewProvider("ollama", "")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("expected ollama, got %q", p.Name())
	}
}

func TestNewProviderCaseInsensitive(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	if _, err := NewProvider("OpenAI", ""); err != nil {
		t.Errorf("provider names should be case-insensitive: %v", err)
	}
}
