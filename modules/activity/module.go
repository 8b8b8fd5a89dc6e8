// Package activity records cart and checkout events as a bounded
// in-memory feed.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/storefront/domain/money"
	"github.com/example/storefront/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// maxEntries bounds the feed; the oldest entries are dropped first.
const maxEntries = 100

// Module subscribes to cart and checkout events and keeps the most
// recent ones for display.
type Module struct {
	mu      sync.RWMutex
	entries []Entry
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates an activity module.
func NewModule() *Module {
	return &Module{
		entries: make([]Entry, 0, maxEntries),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "activity"
}

// RegisterServices registers the recent-activity service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent", json.Unmarshal, json.Marshal, m.recentService,
	); err != nil {
		return fmt.Errorf("failed to register recent service: %w", err)
	}

	log.Printf("[activity] Registered services: recent")
	return nil
}

// RegisterEventConsumers subscribes to cart and checkout events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.CartUpdatedV1, m.handleCartUpdated, m); err != nil {
		return fmt.Errorf("failed to register CartUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.CheckoutCompletedV1, m.handleCheckoutCompleted, m); err != nil {
		return fmt.Errorf("failed to register CheckoutCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.CheckoutFailedV1, m.handleCheckoutFailed, m); err != nil {
		return fmt.Errorf("failed to register CheckoutFailed consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: CartUpdated, CheckoutCompleted, CheckoutFailed")
	return nil
}

func (m *Module) handleCartUpdated(_ context.Context, event events.CartUpdatedEvent, _ *mono.Msg) error {
	var count int
	for _, line := range event.Lines {
		count += line.Quantity
	}
	m.record("cart_"+event.Action, fmt.Sprintf("Cart %s: %d items across %d lines", event.Action, count, len(event.Lines)))
	return nil
}

func (m *Module) handleCheckoutCompleted(_ context.Context, event events.CheckoutCompletedEvent, _ *mono.Msg) error {
	m.record("checkout_completed", fmt.Sprintf("Order %s placed: %d items, %s", event.OrderRef, event.ItemCount, money.Format(event.Total)))
	return nil
}

func (m *Module) handleCheckoutFailed(_ context.Context, event events.CheckoutFailedEvent, _ *mono.Msg) error {
	m.record("checkout_failed", fmt.Sprintf("Checkout failed on product %d: %s", event.ProductID, event.Reason))
	return nil
}

func (m *Module) record(entryType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{
		ID:        uuid.New().String(),
		Type:      entryType,
		Message:   message,
		Timestamp: time.Now(),
	})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

func (m *Module) recentService(_ context.Context, req RecentRequest, _ *mono.Msg) (RecentResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit := req.Limit
	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}

	// Newest first.
	entries := make([]Entry, 0, limit)
	for i := len(m.entries) - 1; i >= len(m.entries)-limit; i-- {
		entries = append(entries, m.entries[i])
	}
	return RecentResponse{Entries: entries}, nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for cart and checkout events")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}
