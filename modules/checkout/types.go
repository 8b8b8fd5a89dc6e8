package checkout

import "context"

// CheckoutRequest starts a checkout of the current reconciled cart.
type CheckoutRequest struct{}

// CheckoutResponse reports the outcome. On failure Error names the
// product that could not be purchased and the cart is left untouched.
type CheckoutResponse struct {
	OrderRef       string  `json:"orderRef,omitempty"`
	ItemCount      int     `json:"itemCount"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formattedTotal,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// CheckoutPort is the interface other modules use to run a checkout.
type CheckoutPort interface {
	Checkout(ctx context.Context) (*CheckoutResponse, error)
}
