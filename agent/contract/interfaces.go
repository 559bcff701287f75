package contract

import (
	"context"

	statex "github.com/retail-sales-agent/server/agent/state"
)

// Adapter is one sub-service behind the dispatcher. Execute must honour ctx
// cancellation and must never panic across the boundary on its own behalf;
// the harness still guards with recover.
type Adapter interface {
	Name() string
	Execute(ctx context.Context, tc *TurnContext) Envelope
}

// Classifier maps an utterance to an intent plus extracted entities. The
// contract is no-fail: implementations absorb internal errors and degrade to
// a deterministic classification instead.
type Classifier interface {
	Classify(ctx context.Context, text string, history []HistoryEntry) Classification
}

// Renderer turns an aggregate result into natural-language reply text. A
// returned error makes the composer fall back to its deterministic template.
type Renderer interface {
	Render(ctx context.Context, intent Intent, userText string, result *AggregateResult) (string, error)
}

// Registry resolves adapters by name for the dispatcher.
type Registry interface {
	Adapter(name string) (Adapter, bool)
}

// HistoryEntry is one half-turn of conversation carried in the session.
type HistoryEntry = statex.HistoryEntry
