package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

// Support actions.
const (
	SupportReturn   = "return"
	SupportFeedback = "feedback"
	SupportEscalate = "escalate"
	SupportSuggest  = "suggest"
	SupportGeneral  = "general"
)

// Support handles returns, feedback, escalations and post-purchase
// suggestions.
type Support struct {
	catalog     *retailapi.Catalog
	fulfillment *retailapi.Fulfillment
}

func NewSupport(catalog *retailapi.Catalog, fulfillment *retailapi.Fulfillment) *Support {
	return &Support{catalog: catalog, fulfillment: fulfillment}
}

func (a *Support) Name() string { return contract.AdapterSupport }

func (a *Support) Execute(_ context.Context, tc *contract.TurnContext) contract.Envelope {
	action := resolveAction(tc)

	switch action {
	case SupportReturn:
		if tc.OrderID == "" {
			return contract.OK(a.Name(), contract.SupportPayload{
				Action:  SupportReturn,
				Message: "I can help with that return. Which order is it for?",
			}, "return without order id")
		}
		rd := a.fulfillment.ReturnPolicy(tc.OrderID)
		payload := contract.SupportPayload{
			Action:        SupportReturn,
			OrderID:       tc.OrderID,
			ReturnDetails: &rd,
		}
		if rd.Eligible {
			payload.Message = fmt.Sprintf("Your return for %s is approved. %s.", rd.OrderID, rd.Instructions)
		} else {
			payload.Message = fmt.Sprintf("I'm sorry, order %s isn't eligible for return: %s.", tc.OrderID, rd.Instructions)
		}
		return contract.OK(a.Name(), payload, "return processed")

	case SupportFeedback:
		return contract.OK(a.Name(), contract.SupportPayload{
			Action:      SupportFeedback,
			Message:     "Thanks for sharing! You can leave detailed feedback at the link below.",
			FeedbackURL: "https://velocity.example/feedback",
		}, "feedback link issued")

	case SupportEscalate:
		return contract.OK(a.Name(), contract.SupportPayload{
			Action:  SupportEscalate,
			Message: "I've flagged this for our support team. Someone will reach out within 24 hours.",
		}, "escalated to human support")

	case SupportSuggest:
		var recs []retailapi.ComplementaryProduct
		for _, id := range tc.ProductIDs {
			recs = append(recs, a.catalog.Complementary(id)...)
		}
		msg := "Here are a few things that go well with your purchase."
		if len(recs) == 0 {
			msg = "I don't have suggestions for that item yet, but I'm happy to help with anything else."
		}
		return contract.OK(a.Name(), contract.SupportPayload{
			Action:          SupportSuggest,
			Message:         msg,
			Recommendations: recs,
		}, "suggestions prepared")

	default:
		return contract.OK(a.Name(), contract.SupportPayload{
			Action:  SupportGeneral,
			Message: "I'm here to help with returns, exchanges, order issues or anything else. What's going on?",
		}, "general support reply")
	}
}

func resolveAction(tc *contract.TurnContext) string {
	if tc.Action != "" {
		switch tc.Action {
		case SupportReturn, SupportFeedback, SupportEscalate, SupportSuggest:
			return tc.Action
		}
	}

	lower := strings.ToLower(tc.Query)
	switch {
	case strings.Contains(lower, "return") || strings.Contains(lower, "refund") || strings.Contains(lower, "exchange"):
		return SupportReturn
	case strings.Contains(lower, "feedback") || strings.Contains(lower, "review"):
		return SupportFeedback
	case strings.Contains(lower, "complaint") || strings.Contains(lower, "human") || strings.Contains(lower, "agent") || strings.Contains(lower, "manager"):
		return SupportEscalate
	case strings.Contains(lower, "goes with") || strings.Contains(lower, "go with") || strings.Contains(lower, "accessor"):
		return SupportSuggest
	default:
		return SupportGeneral
	}
}
