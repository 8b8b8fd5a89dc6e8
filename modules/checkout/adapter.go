package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// checkoutAdapter wraps the checkout ServiceContainer behind the
// CheckoutPort interface.
type checkoutAdapter struct {
	container mono.ServiceContainer
}

// NewCheckoutAdapter creates an adapter for the checkout service.
func NewCheckoutAdapter(container mono.ServiceContainer) CheckoutPort {
	if container == nil {
		panic("checkout adapter requires non-nil ServiceContainer")
	}
	return &checkoutAdapter{container: container}
}

// Checkout runs the checkout flow.
func (a *checkoutAdapter) Checkout(ctx context.Context) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "run", json.Marshal, json.Unmarshal, CheckoutRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("run service call failed: %w", err)
	}
	return &resp, nil
}
