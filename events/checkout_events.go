package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CheckoutCompletedEvent is emitted when every stock decrement of a
// checkout succeeded and the cart was cleared.
type CheckoutCompletedEvent struct {
	OrderRef    string    `json:"order_ref"`
	ItemCount   int       `json:"item_count"`
	Total       float64   `json:"total"`
	CompletedAt time.Time `json:"completed_at"`
}

// CheckoutCompletedV1 is the typed event definition for successful checkouts.
// Subject: events.checkout.v1.checkout-completed
var CheckoutCompletedV1 = helper.EventDefinition[CheckoutCompletedEvent](
	"checkout", "CheckoutCompleted", "v1",
)

// CheckoutFailedEvent is emitted when a stock decrement request failed.
// Decrements already applied to earlier items are not rolled back.
type CheckoutFailedEvent struct {
	ProductID int64     `json:"product_id"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failed_at"`
}

// CheckoutFailedV1 is the typed event definition for failed checkouts.
// Subject: events.checkout.v1.checkout-failed
var CheckoutFailedV1 = helper.EventDefinition[CheckoutFailedEvent](
	"checkout", "CheckoutFailed", "v1",
)
