package cartview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// viewAdapter wraps the cartview ServiceContainer behind the ViewPort
// interface for other modules.
type viewAdapter struct {
	container mono.ServiceContainer
}

// NewViewAdapter creates an adapter for the cart view services.
func NewViewAdapter(container mono.ServiceContainer) ViewPort {
	if container == nil {
		panic("cartview adapter requires non-nil ServiceContainer")
	}
	return &viewAdapter{container: container}
}

// Get returns the current reconciled cart.
func (a *viewAdapter) Get(ctx context.Context) (*GetResponse, error) {
	var resp GetResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, GetRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp, nil
}

// Increase bumps a line's quantity within the product's stock.
func (a *viewAdapter) Increase(ctx context.Context, productID int64) (*IncreaseResponse, error) {
	var resp IncreaseResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "increase-quantity", json.Marshal, json.Unmarshal,
		IncreaseRequest{ProductID: productID}, &resp,
	); err != nil {
		return nil, fmt.Errorf("increase-quantity service call failed: %w", err)
	}
	return &resp, nil
}

// Decrease lowers a line's quantity, floored at one.
func (a *viewAdapter) Decrease(ctx context.Context, productID int64) (*DecreaseResponse, error) {
	var resp DecreaseResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "decrease-quantity", json.Marshal, json.Unmarshal,
		DecreaseRequest{ProductID: productID}, &resp,
	); err != nil {
		return nil, fmt.Errorf("decrease-quantity service call failed: %w", err)
	}
	return &resp, nil
}
