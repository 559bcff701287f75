package classify

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/retail-sales-agent/server/agent/contract"
)

func msg(content string) *schema.Message {
	return schema.AssistantMessage(content, nil)
}

func TestKeywordIntentDetection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want contract.Intent
	}{
		{"I'm looking for running shoes under 5000", contract.IntentProductSearch},
		{"tell me more about P001", contract.IntentProductDetails},
		{"add it to my cart", contract.IntentAddToCart},
		{"remove it from my cart", contract.IntentAddToCart},
		{"I want to checkout with coupon WELCOME10", contract.IntentCheckout},
		{"where is my order ORD-1001", contract.IntentOrderStatus},
		{"I want to return the jacket, it's damaged", contract.IntentSupport},
		{"hello there", contract.IntentGeneral},
	}

	k := Keyword{}
	for _, tc := range cases {
		got := k.Classify(context.Background(), tc.text, nil)
		if got.Intent != tc.want {
			t.Errorf("%q -> %s, want %s", tc.text, got.Intent, tc.want)
		}
	}
}

func TestKeywordEntityExtraction(t *testing.T) {
	t.Parallel()

	k := Keyword{}

	c := k.Classify(context.Background(), "show me running shoes under ₹4000", nil)
	if c.Entities[contract.EntityBudget] != 4000.0 {
		t.Fatalf("budget = %v", c.Entities[contract.EntityBudget])
	}
	if c.Entities[contract.EntityCategory] != "shoes" {
		t.Fatalf("category = %v", c.Entities[contract.EntityCategory])
	}

	c = k.Classify(context.Background(), "add p001 to my cart", nil)
	ids, _ := c.Entities[contract.EntityProductIDs].([]string)
	if len(ids) != 1 || ids[0] != "P001" {
		t.Fatalf("product ids = %v", ids)
	}

	c = k.Classify(context.Background(), "track ORD-1001 please", nil)
	if c.Entities[contract.EntityOrderID] != "ORD-1001" {
		t.Fatalf("order id = %v", c.Entities[contract.EntityOrderID])
	}

	c = k.Classify(context.Background(), "checkout with coupon WELCOME10", nil)
	if c.Entities[contract.EntityCouponCode] != "WELCOME10" {
		t.Fatalf("coupon = %v", c.Entities[contract.EntityCouponCode])
	}
}

func TestParseClassificationExtractsWrappedJSON(t *testing.T) {
	t.Parallel()

	content := "Sure! Here is the classification:\n```json\n" +
		`{"intent": "checkout", "entities": {"coupon_code": "VIP15"}, "confidence": 0.92}` +
		"\n```"

	c, err := parseClassification(context.Background(), msg(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Intent != contract.IntentCheckout {
		t.Fatalf("intent = %s", c.Intent)
	}
	if c.Entities["coupon_code"] != "VIP15" {
		t.Fatalf("entities = %v", c.Entities)
	}
	if c.Confidence != 0.92 {
		t.Fatalf("confidence = %v", c.Confidence)
	}
}

func TestParseClassificationUnknownIntent(t *testing.T) {
	t.Parallel()

	c, err := parseClassification(context.Background(), msg(`{"intent": "buy_spaceship", "confidence": 3}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Intent != contract.DefaultIntent {
		t.Fatalf("intent = %s, want %s", c.Intent, contract.DefaultIntent)
	}
	if c.Confidence != 1 {
		t.Fatalf("confidence = %v, want clamped to 1", c.Confidence)
	}
}

func TestParseClassificationNoJSON(t *testing.T) {
	t.Parallel()

	if _, err := parseClassification(context.Background(), msg("I cannot help with that.")); err == nil {
		t.Fatal("expected error for reply without JSON")
	}
}
