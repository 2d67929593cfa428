package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/observon/sheetsight/internal/ai"
)

type fakeProvider struct {
	content string
	err     error

	lastSystem  string
	lastMessage string
	calls       int
}

func (f *fakeProvider) Complete(ctx context.Context, system string, messages []ai.Message, opts ai.Options) (*ai.Result, error) {
	f.calls++
	f.lastSystem = system
	if len(messages) > 0 {
		f.lastMessage = messages[len(messages)-1].Content
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ai.Result{Content: f.content, Model: "fake"}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestAskCustomMode(t *testing.T) {
	fake := &fakeProvider{content: "the answer"}
	analyst := NewAnalyst(fake)

	got, err := analyst.Ask(context.Background(), "3 rows × 2 columns", "What is the total?", ModeCustom)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "the answer" {
		t.Errorf("expected provider content, got %q", got)
	}
	if !strings.Contains(fake.lastMessage, "3 rows × 2 columns") {
		t.Error("prompt context missing from user message")
	}
	if !strings.Contains(fake.lastMessage, "What is the total?") {
		t.Error("question missing from user message")
	}
	if fake.lastSystem != customSystemPrompt {
		t.Errorf("custom mode used wrong system prompt: %q", fake.lastSystem)
	}
}

func TestAskAutoMode(t *testing.T) {
	fake := &fakeProvider{content: "insights"}
	analyst := NewAnalyst(fake)

	if _, err := analyst.Ask(context.Background(), "summary text", "", ModeAuto); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if fake.lastSystem != autoSystemPrompt {
		t.Errorf("auto mode used wrong system prompt")
	}
	if strings.Contains(fake.lastMessage, "Additional instructions") {
		t.Error("empty instruction should not add an instructions section")
	}

	if _, err := analyst.Ask(context.Background(), "summary text", "focus on Q4", ModeAuto); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.lastMessage, "focus on Q4") {
		t.Error("preset instruction missing from auto-mode message")
	}
}

func TestAskEmptyResponse(t *testing.T) {
	for _, content := range []string{"", "   \n"} {
		fake := &fakeProvider{content: content}
		analyst := NewAnalyst(fake)

		_, err := analyst.Ask(context.Background(), "ctx", "q", ModeCustom)
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("content %q: expected ErrEmptyResponse, got %v", content, err)
		}
	}
}

func TestAskProviderError(t *testing.T) {
	fake := &fakeProvider{err: errors.New("boom")}
	analyst := NewAnalyst(fake)

	_, err := analyst.Ask(context.Background(), "ctx", "q", ModeCustom)
	if err == nil || !strings.Contains(err.Error(), "analysis failed") {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}
