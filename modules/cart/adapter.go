package cart

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// cartAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements the CartPort interface.
type cartAdapter struct {
	container mono.ServiceContainer
}

// NewCartAdapter creates a new adapter for cart services. container is the
// ServiceContainer received via SetDependencyServiceContainer.
func NewCartAdapter(container mono.ServiceContainer) CartPort {
	if container == nil {
		panic("cart adapter requires non-nil ServiceContainer")
	}
	return &cartAdapter{container: container}
}

// Add puts a product in the cart via the add service.
func (a *cartAdapter) Add(ctx context.Context, product domain.Product) ([]LineItem, error) {
	req := AddRequest{Product: product}
	var resp AddResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "add", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("add service call failed: %w", err)
	}
	return resp.Items, nil
}

// Remove deletes a line item via the remove service.
func (a *cartAdapter) Remove(ctx context.Context, productID int64) (bool, []LineItem, error) {
	req := RemoveRequest{ProductID: productID}
	var resp RemoveResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "remove", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return false, nil, fmt.Errorf("remove service call failed: %w", err)
	}
	return resp.Removed, resp.Items, nil
}

// Clear empties the cart via the clear service.
func (a *cartAdapter) Clear(ctx context.Context) error {
	var resp ClearResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "clear", json.Marshal, json.Unmarshal, &ClearRequest{}, &resp,
	); err != nil {
		return fmt.Errorf("clear service call failed: %w", err)
	}
	return nil
}

// List returns the current cart via the list service.
func (a *cartAdapter) List(ctx context.Context) ([]LineItem, error) {
	var resp ListResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &ListRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return resp.Items, nil
}
