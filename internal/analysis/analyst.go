package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/observon/sheetsight/internal/ai"
)

// Mode selects which system instruction frames the request.
type Mode int

const (
	// ModeAuto asks for a full structured analysis with a fixed instruction.
	ModeAuto Mode = iota
	// ModeCustom answers a user-supplied question about the data.
	ModeCustom
)

const autoSystemPrompt = `You are an expert data analyst. Analyze the following spreadsheet data and provide structured insights.

1. Describe the data structure (columns, types, row count)
2. Identify trends, patterns, and correlations
3. Flag anomalies or outliers
4. Provide key summary statistics where relevant
5. Suggest actionable insights

Present your analysis in clear sections. Be specific — reference actual values, column names, and row positions.`

const customSystemPrompt = "You are a helpful assistant that analyzes spreadsheet data. Answer the user's question based only on the data provided. If the answer is not in the data, say so."

// ErrEmptyResponse reports a completion call that produced no text.
var ErrEmptyResponse = errors.New("completion returned no text")

// Analyst submits prompt context to a completion provider. Each call is
// independent; no conversation state is kept between calls.
type Analyst struct {
	provider ai.Provider
	opts     ai.Options
}

// NewAnalyst creates an Analyst on the given provider.
func NewAnalyst(provider ai.Provider) *Analyst {
	return &Analyst{
		provider: provider,
		opts: ai.Options{
			MaxTokens:   1000,
			Temperature: 0.7,
		},
	}
}

// Ask concatenates the mode's system instruction, the table summary, and the
// instruction, and returns the generated text. An empty completion is an
// error, never returned as a result.
func (a *Analyst) Ask(ctx context.Context, promptContext, instruction string, mode Mode) (string, error) {
	system := customSystemPrompt
	userMsg := fmt.Sprintf("Here's the spreadsheet data:\n\n%s\n\n%s", promptContext, instruction)

	if mode == ModeAuto {
		system = autoSystemPrompt
		userMsg = fmt.Sprintf("Here's the spreadsheet data:\n\n%s", promptContext)
		if instruction != "" {
			userMsg += "\n\nAdditional instructions: " + instruction
		}
	}

	result, err := a.provider.Complete(ctx, system, []ai.Message{{Role: "user", Content: userMsg}}, a.opts)
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	if strings.TrimSpace(result.Content) == "" {
		return "", ErrEmptyResponse
	}

	return result.Content, nil
}

// Provider returns the backing provider, for status displays.
func (a *Analyst) Provider() ai.Provider {
	return a.provider
}
