package classify

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/state"
)

// LLM classifies with a chat model and degrades to the keyword classifier on
// any failure, honouring the no-fail classification contract.
type LLM struct {
	runnable compose.Runnable[map[string]any, contract.Classification]
	fallback Keyword
}

// NewLLM compiles the classification graph over the given chat model.
func NewLLM(ctx context.Context, chatModel model.BaseChatModel) (*LLM, error) {
	runnable, err := compileGraph(ctx, chatModel)
	if err != nil {
		return nil, err
	}
	return &LLM{runnable: runnable}, nil
}

func (l *LLM) Classify(ctx context.Context, text string, history []contract.HistoryEntry) contract.Classification {
	c, err := l.runnable.Invoke(ctx, map[string]any{
		"query":   text,
		"history": toMessages(history),
	})
	if err != nil {
		log.Warn().Err(err).Msg("llm classification failed, using keyword fallback")
		return l.fallback.Classify(ctx, text, history)
	}

	log.Debug().
		Str("intent", string(c.Intent)).
		Float64("confidence", c.Confidence).
		Msg("classified")
	return c
}

// toMessages converts history entries verbatim; the caller decides how much
// history to hand over.
func toMessages(history []contract.HistoryEntry) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, h := range history {
		switch h.Role {
		case state.RoleAgent:
			out = append(out, schema.AssistantMessage(h.Content, nil))
		default:
			out = append(out, schema.UserMessage(h.Content))
		}
	}
	return out
}
