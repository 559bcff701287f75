// Package state holds per-conversation session data and its persistence.
package state

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retail-sales-agent/server/agent/retailapi"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 24 * time.Hour

// History roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// HistoryEntry is one half-turn of conversation. Agent entries carry the
// product snapshots that were shown, so later turns can refer back to them.
type HistoryEntry struct {
	Role      string                    `json:"role"`
	Content   string                    `json:"content"`
	Products  []retailapi.RankedProduct `json:"products,omitempty"`
	Timestamp string                    `json:"timestamp"`
}

// CartItem is one line of the active cart.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Cart is the session's active cart. Subtotal is recomputed on every mutation.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// Add merges the item into the cart, bumping quantity when the same product,
// size and color line already exists.
func (c *Cart) Add(item CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i, existing := range c.Items {
		if existing.ProductID == item.ProductID && existing.Size == item.Size && existing.Color == item.Color {
			c.Items[i].Quantity += item.Quantity
			c.recompute()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.recompute()
}

// Remove drops all lines for the given product id. Returns true when
// something was removed.
func (c *Cart) Remove(productID string) bool {
	kept := c.Items[:0]
	removed := false
	for _, item := range c.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	if removed {
		c.recompute()
	}
	return removed
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.Subtotal = 0
}

// ProductIDs lists the distinct product ids in the cart, in insertion order.
func (c *Cart) ProductIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	out := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		out = append(out, item.ProductID)
	}
	return out
}

func (c *Cart) recompute() {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price * float64(item.Quantity)
	}
	c.Subtotal = math.Round(sum*100) / 100
}

// Session is the per-conversation state persisted between turns.
type Session struct {
	SessionID   string         `json:"session_id"`
	CustomerID  string         `json:"customer_id"`
	History     []HistoryEntry `json:"conversation_history"`
	Cart        Cart           `json:"active_cart"`
	Entities    map[string]any `json:"context"`
	LastUpdated time.Time      `json:"last_updated"`
}

// NewSession creates a fresh session. Empty ids are generated; an empty
// customer id gets a guest identity.
func NewSession(sessionID, customerID string, now time.Time) *Session {
	if strings.TrimSpace(sessionID) == "" {
		sessionID = uuid.NewString()
	}
	if strings.TrimSpace(customerID) == "" {
		customerID = fmt.Sprintf("GUEST_%s", uuid.NewString()[:8])
	}
	return &Session{
		SessionID:   sessionID,
		CustomerID:  customerID,
		Entities:    make(map[string]any),
		LastUpdated: now,
	}
}

// Append records one half-turn in the conversation history. Products are
// only meaningful on agent entries; pass nil for user turns.
func (s *Session) Append(role, content string, products []retailapi.RankedProduct, at time.Time) {
	s.History = append(s.History, HistoryEntry{
		Role:      role,
		Content:   content,
		Products:  products,
		Timestamp: at.UTC().Format(time.RFC3339),
	})
	s.LastUpdated = at
}

// MergeEntities folds newly extracted entities over the accumulated ones.
// Later turns win; existing keys absent this turn are kept.
func (s *Session) MergeEntities(entities map[string]any) {
	if s.Entities == nil {
		s.Entities = make(map[string]any, len(entities))
	}
	for k, v := range entities {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok && strings.TrimSpace(str) == "" {
			continue
		}
		s.Entities[k] = v
	}
}

// RecentHistory returns up to n of the latest history entries.
func (s *Session) RecentHistory(n int) []HistoryEntry {
	if n <= 0 || len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
