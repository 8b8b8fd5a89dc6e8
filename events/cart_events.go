package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CartLine is one (product id, quantity) pair in a cart event payload.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartUpdatedEvent is emitted after every persisted cart mutation. It
// carries the full resulting line-item list so consumers can rebuild
// their views without a round-trip back to the cart store.
type CartUpdatedEvent struct {
	Action    string     `json:"action"` // add, remove, clear
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartUpdatedV1 is the typed event definition for cart mutations.
// Subject: events.cart.v1.cart-updated
var CartUpdatedV1 = helper.EventDefinition[CartUpdatedEvent](
	"cart", "CartUpdated", "v1",
)
