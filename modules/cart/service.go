package cart

import (
	"context"
	"log"
	"time"

	"github.com/example/storefront/events"
	"github.com/go-monolith/mono"
)

// addService handles the add service request.
func (m *Module) addService(_ context.Context, req AddRequest, _ *mono.Msg) (AddResponse, error) {
	items, err := m.repo.Add(req.Product)
	if err != nil {
		return AddResponse{}, err
	}

	lineItems, err := toLineItems(items)
	if err != nil {
		return AddResponse{}, err
	}
	m.publishCartUpdated("add", lineItems)

	return AddResponse{Items: lineItems}, nil
}

// removeService handles the remove service request.
func (m *Module) removeService(_ context.Context, req RemoveRequest, _ *mono.Msg) (RemoveResponse, error) {
	removed, items, err := m.repo.Remove(req.ProductID)
	if err != nil {
		return RemoveResponse{}, err
	}

	lineItems, err := toLineItems(items)
	if err != nil {
		return RemoveResponse{}, err
	}
	if removed {
		m.publishCartUpdated("remove", lineItems)
	}

	return RemoveResponse{Removed: removed, Items: lineItems}, nil
}

// clearService handles the clear service request.
func (m *Module) clearService(_ context.Context, _ ClearRequest, _ *mono.Msg) (ClearResponse, error) {
	if err := m.repo.Clear(); err != nil {
		return ClearResponse{}, err
	}
	m.publishCartUpdated("clear", nil)
	return ClearResponse{Cleared: true}, nil
}

// listService handles the list service request.
func (m *Module) listService(_ context.Context, _ ListRequest, _ *mono.Msg) (ListResponse, error) {
	items, err := m.repo.List()
	if err != nil {
		return ListResponse{}, err
	}

	lineItems, err := toLineItems(items)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Items: lineItems, Total: len(lineItems)}, nil
}

// publishCartUpdated emits a CartUpdated event carrying the full resulting
// cart. Event publishing is best-effort; a missing bus or a publish error
// never fails the mutation that already persisted.
func (m *Module) publishCartUpdated(action string, items []LineItem) {
	if m.eventBus == nil {
		return
	}

	lines := make([]events.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, events.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	event := events.CartUpdatedEvent{
		Action:    action,
		Lines:     lines,
		UpdatedAt: time.Now(),
	}
	if err := events.CartUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[cart] Warning: failed to publish CartUpdated event: %v", err)
	}
}

// toLineItems converts persisted items to the cross-module representation.
func toLineItems(items []Item) ([]LineItem, error) {
	lineItems := make([]LineItem, 0, len(items))
	for _, item := range items {
		product, err := decodeSnapshot(item)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   product,
			AddedAt:   item.AddedAt,
		})
	}
	return lineItems, nil
}
