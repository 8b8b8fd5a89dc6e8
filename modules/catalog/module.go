package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Module holds the last fetched product list and exposes the backend REST
// operations as request-reply services.
type Module struct {
	client *Client

	mu       sync.RWMutex
	products []domain.Product
	errMsg   string
	loading  bool
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a catalog module talking to the backend at baseURL.
func NewModule(baseURL string) *Module {
	return &Module{
		client:  NewClient(baseURL),
		loading: true,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterServices registers the catalog request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "refresh", json.Unmarshal, json.Marshal, m.refreshService,
	); err != nil {
		return fmt.Errorf("failed to register refresh service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listService,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getService,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "search", json.Unmarshal, json.Marshal, m.searchService,
	); err != nil {
		return fmt.Errorf("failed to register search service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "fetch-all", json.Unmarshal, json.Marshal, m.fetchAllService,
	); err != nil {
		return fmt.Errorf("failed to register fetch-all service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateService,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteService,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[catalog] Registered services: refresh, list, get, search, fetch-all, update, delete")
	return nil
}

// Start kicks off the initial catalog refresh. The fetch runs in the
// background so a slow backend does not block application startup; the
// loading flag stays set until it completes.
func (m *Module) Start(_ context.Context) error {
	go m.Refresh(context.Background())
	log.Printf("[catalog] Module started, backend: %s", m.client.baseURL)
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[catalog] Module stopped")
	return nil
}

// Health reports the catalog fetch state.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"backend":  m.client.baseURL,
			"products": len(m.products),
			"loading":  m.loading,
			"error":    m.errMsg,
		},
	}
}
