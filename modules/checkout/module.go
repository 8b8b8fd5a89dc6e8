package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/storefront/events"
	"github.com/example/storefront/modules/cart"
	"github.com/example/storefront/modules/cartview"
	"github.com/example/storefront/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	gonanoid "github.com/jaevor/go-nanoid"
)

const (
	orderRefAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	orderRefLength   = 10
)

// Module runs the checkout flow: one stock-decrement update per cart line
// against the backend, in cart order, then clears the persisted cart.
type Module struct {
	cartPort    cart.CartPort
	viewPort    cartview.ViewPort
	catalogPort catalog.CatalogPort
	eventBus    mono.EventBus
	newOrderRef func() string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)

// NewModule creates a checkout module.
func NewModule() *Module {
	gen, err := gonanoid.CustomASCII(orderRefAlphabet, orderRefLength)
	if err != nil {
		panic(fmt.Sprintf("invalid order reference alphabet: %v", err))
	}
	return &Module{newOrderRef: gen}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "checkout"
}

// Dependencies lists the modules whose services this module calls.
func (m *Module) Dependencies() []string {
	return []string{"cart", "cartview", "catalog"}
}

// SetDependencyServiceContainer wires the cart, view and catalog ports.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "cart":
		m.cartPort = cart.NewCartAdapter(container)
	case "cartview":
		m.viewPort = cartview.NewViewAdapter(container)
	case "catalog":
		m.catalogPort = catalog.NewCatalogAdapter(container)
	}
}

// SetEventBus stores the event bus for checkout events.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CheckoutCompletedV1.ToBase(),
		events.CheckoutFailedV1.ToBase(),
	}
}

// RegisterServices registers the checkout request-reply service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "run", json.Unmarshal, json.Marshal, m.checkoutService,
	); err != nil {
		return fmt.Errorf("failed to register run service: %w", err)
	}

	log.Printf("[checkout] Registered services: run")
	return nil
}

// Start verifies the dependencies are wired.
func (m *Module) Start(_ context.Context) error {
	if m.cartPort == nil || m.viewPort == nil || m.catalogPort == nil {
		return fmt.Errorf("checkout dependencies not set")
	}
	if m.eventBus == nil {
		log.Println("[checkout] Warning: eventBus not set, events will not be published")
	}
	log.Println("[checkout] Module started (depends on: cart, cartview, catalog)")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[checkout] Module stopped")
	return nil
}
