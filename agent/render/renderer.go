// Package render produces natural-language replies from aggregate results.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	"github.com/retail-sales-agent/server/agent/contract"
	promptx "github.com/retail-sales-agent/server/agent/prompt"
	"github.com/retail-sales-agent/server/pkg/llm"
)

// LLM renders replies with a chat completion. Errors propagate to the
// composer, which falls back to its deterministic template.
type LLM struct {
	client      *openaisdk.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewLLM builds the renderer from the shared model configuration.
func NewLLM(cfg llm.Config) (*LLM, error) {
	client := llm.NewClient(cfg)
	if client == nil {
		return nil, fmt.Errorf("%w: renderer requires an api key", contract.ErrRenderer)
	}

	model, temperature := cfg.For(llm.RoleRenderer)
	return &LLM{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   cfg.MaxCompletionToken,
	}, nil
}

func (l *LLM) Render(ctx context.Context, intent contract.Intent, userText string, result *contract.AggregateResult) (string, error) {
	system, err := systemPrompt(intent, result)
	if err != nil {
		return "", err
	}

	resp, err := l.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(l.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(system),
			openaisdk.UserMessage(userText),
		},
		Temperature:         openaisdk.Float(float64(l.temperature)),
		MaxCompletionTokens: openaisdk.Int(int64(l.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", contract.ErrModelInvoke, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", contract.ErrRenderer)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty model reply", contract.ErrRenderer)
	}
	return text, nil
}

// systemPrompt fills the renderer template with the intent and the
// JSON-encoded aggregate result.
func systemPrompt(intent contract.Intent, result *contract.AggregateResult) (string, error) {
	results, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: encode results: %v", contract.ErrRenderer, err)
	}

	return strings.NewReplacer(
		"{intent}", string(intent),
		"{results}", string(results),
	).Replace(promptx.Renderer), nil
}
