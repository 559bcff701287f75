package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/retail-sales-agent/server/agent/contract"
	promptx "github.com/retail-sales-agent/server/agent/prompt"
)

// rawClassification is the JSON shape the model is asked to emit.
type rawClassification struct {
	Intent     string         `json:"intent"`
	Entities   map[string]any `json:"entities"`
	Confidence float64        `json:"confidence"`
}

// compileGraph builds the classification pipeline: chat template, chat model,
// then a JSON-extracting parser lambda.
func compileGraph(ctx context.Context, chatModel model.BaseChatModel) (compose.Runnable[map[string]any, contract.Classification], error) {
	tpl := prompt.FromMessages(schema.FString,
		schema.SystemMessage(promptx.Classifier),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	g := compose.NewGraph[map[string]any, contract.Classification]()

	if err := g.AddChatTemplateNode("template", tpl); err != nil {
		return nil, fmt.Errorf("add template node: %w", err)
	}
	if err := g.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add model node: %w", err)
	}
	if err := g.AddLambdaNode("parser", compose.InvokableLambda(parseClassification)); err != nil {
		return nil, fmt.Errorf("add parser node: %w", err)
	}

	if err := g.AddEdge(compose.START, "template"); err != nil {
		return nil, err
	}
	if err := g.AddEdge("template", "model"); err != nil {
		return nil, err
	}
	if err := g.AddEdge("model", "parser"); err != nil {
		return nil, err
	}
	if err := g.AddEdge("parser", compose.END); err != nil {
		return nil, err
	}

	return g.Compile(ctx)
}

func parseClassification(_ context.Context, msg *schema.Message) (contract.Classification, error) {
	raw, err := extractJSON(msg.Content)
	if err != nil {
		return contract.Classification{}, err
	}

	var rc rawClassification
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return contract.Classification{}, fmt.Errorf("%w: %v", contract.ErrSchemaViolation, err)
	}

	c := contract.Classification{
		Intent:     contract.ParseIntent(strings.TrimSpace(rc.Intent)),
		Entities:   rc.Entities,
		Confidence: rc.Confidence,
	}
	if c.Entities == nil {
		c.Entities = map[string]any{}
	}
	if c.Confidence < 0 {
		c.Confidence = 0
	}
	if c.Confidence > 1 {
		c.Confidence = 1
	}
	return c, nil
}

// extractJSON pulls the outermost JSON object out of a model reply that may
// wrap it in prose or code fences.
func extractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in model reply", contract.ErrSchemaViolation)
	}
	return content[start : end+1], nil
}
