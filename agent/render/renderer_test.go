package render

import (
	"strings"
	"testing"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
	"github.com/retail-sales-agent/server/pkg/llm"
)

func TestNewLLMRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewLLM(llm.Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestSystemPromptSubstitution(t *testing.T) {
	t.Parallel()

	result := &contract.AggregateResult{
		Products: []retailapi.RankedProduct{
			{Product: retailapi.Product{ID: "P001", Name: "AeroStride Running Shoes", Price: 3999}},
		},
	}

	got, err := systemPrompt(contract.IntentProductSearch, result)
	if err != nil {
		t.Fatalf("systemPrompt: %v", err)
	}
	if strings.Contains(got, "{intent}") || strings.Contains(got, "{results}") {
		t.Fatal("placeholders not substituted")
	}
	if !strings.Contains(got, "product_search") {
		t.Fatal("intent missing from prompt")
	}
	if !strings.Contains(got, "AeroStride Running Shoes") {
		t.Fatal("results missing from prompt")
	}
}
