package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// catalogAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements the CatalogPort interface.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new adapter for catalog services. container is
// the ServiceContainer received via SetDependencyServiceContainer.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

// mapServiceError restores the not-found sentinel, which crosses the
// service bus as a plain message.
func mapServiceError(name string, err error) error {
	if strings.Contains(err.Error(), ErrNotFound.Error()) {
		return ErrNotFound
	}
	return fmt.Errorf("%s service call failed: %w", name, err)
}

// Refresh forces a catalog resync via the refresh service.
func (a *catalogAdapter) Refresh(ctx context.Context) (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "refresh", json.Marshal, json.Unmarshal, &RefreshRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("refresh service call failed: %w", err)
	}
	return &resp, nil
}

// List returns the cached product list via the list service.
func (a *catalogAdapter) List(ctx context.Context) (*ListResponse, error) {
	var resp ListResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &ListRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return &resp, nil
}

// Get fetches a single product via the get service.
func (a *catalogAdapter) Get(ctx context.Context, id int64) (*domain.Product, error) {
	req := GetRequest{ID: id}
	var resp GetResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, mapServiceError("get", err)
	}
	return &resp.Product, nil
}

// Search fetches matching products via the search service.
func (a *catalogAdapter) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	req := SearchRequest{Keyword: keyword}
	var resp SearchResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "search", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("search service call failed: %w", err)
	}
	return resp.Products, nil
}

// FetchAll performs a fresh backend round-trip via the fetch-all service.
func (a *catalogAdapter) FetchAll(ctx context.Context) ([]domain.Product, error) {
	var resp FetchAllResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "fetch-all", json.Marshal, json.Unmarshal, &FetchAllRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("fetch-all service call failed: %w", err)
	}
	return resp.Products, nil
}

// Update submits a product update via the update service.
func (a *catalogAdapter) Update(ctx context.Context, req *UpdateRequest) (*domain.Product, error) {
	var resp UpdateResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, mapServiceError("update", err)
	}
	return &resp.Product, nil
}

// Delete removes a product via the delete service.
func (a *catalogAdapter) Delete(ctx context.Context, id int64) error {
	req := DeleteRequest{ID: id}
	var resp DeleteResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return mapServiceError("delete", err)
	}
	if !resp.Deleted {
		return fmt.Errorf("product not deleted: %d", id)
	}
	return nil
}
