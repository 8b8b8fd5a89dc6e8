package cartview

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/example/storefront/events"
	"github.com/example/storefront/modules/cache"
	"github.com/example/storefront/modules/cart"
	"github.com/example/storefront/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"golang.org/x/sync/singleflight"
)

// Module keeps the reconciled cart in memory. It rebuilds the view from
// CartUpdated events, joining the persisted lines with fresh catalog data,
// and serves quantity adjustments that never touch the persisted cart.
type Module struct {
	cartPort    cart.CartPort
	catalogPort catalog.CatalogPort
	cache       *cache.Cache
	group       singleflight.Group

	mu    sync.RWMutex
	lines []events.CartLine
	items []ReconciledItem
	stale bool
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a cart view module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cartview"
}

// Dependencies lists the modules whose services this module calls.
func (m *Module) Dependencies() []string {
	return []string{"cart", "catalog"}
}

// SetDependencyServiceContainer wires the cart and catalog ports.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "cart":
		m.cartPort = cart.NewCartAdapter(container)
	case "catalog":
		m.catalogPort = catalog.NewCatalogAdapter(container)
	}
}

// SetCache attaches the shared product cache. A nil cache means every
// rebuild goes straight to the backend.
func (m *Module) SetCache(c *cache.Cache) {
	m.cache = c
}

// RegisterServices registers the view request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getService,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "increase-quantity", json.Unmarshal, json.Marshal, m.increaseService,
	); err != nil {
		return fmt.Errorf("failed to register increase-quantity service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "decrease-quantity", json.Unmarshal, json.Marshal, m.decreaseService,
	); err != nil {
		return fmt.Errorf("failed to register decrease-quantity service: %w", err)
	}

	log.Printf("[cartview] Registered services: get, increase-quantity, decrease-quantity")
	return nil
}

// RegisterEventConsumers subscribes to cart changes.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.CartUpdatedV1, m.handleCartUpdated, m); err != nil {
		return fmt.Errorf("failed to register CartUpdated consumer: %w", err)
	}

	log.Printf("[cartview] Registered event consumers: CartUpdated")
	return nil
}

func (m *Module) handleCartUpdated(ctx context.Context, event events.CartUpdatedEvent, _ *mono.Msg) error {
	m.rebuild(ctx, event.Lines)
	return nil
}

// Start builds the initial view from the persisted cart.
func (m *Module) Start(ctx context.Context) error {
	if m.cartPort == nil {
		return fmt.Errorf("cartPort dependency not set")
	}
	if m.catalogPort == nil {
		return fmt.Errorf("catalogPort dependency not set")
	}

	items, err := m.cartPort.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load persisted cart: %w", err)
	}

	lines := make([]events.CartLine, len(items))
	for i, item := range items {
		lines[i] = events.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	m.rebuild(ctx, lines)

	log.Printf("[cartview] Module started (%d cart lines)", len(lines))
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[cartview] Module stopped")
	return nil
}

// Health reports the view size and whether it is stale.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	message := "view up to date"
	if m.stale {
		message = "view stale, backend unreachable on last rebuild"
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: message,
		Details: map[string]interface{}{
			"cart_lines": len(m.lines),
			"view_items": len(m.items),
			"stale":      m.stale,
		},
	}
}
