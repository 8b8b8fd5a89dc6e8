package catalog

import (
	"context"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/go-monolith/mono"
)

// Refresh fetches the full catalog and replaces the cached list. A failed
// fetch keeps the previous list and records the error message instead of
// returning it; the loading flag is cleared on completion either way.
// Concurrent calls are not deduplicated; callers avoid redundant triggers.
func (m *Module) Refresh(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	products, err := m.client.ListProducts(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.products = products
	m.errMsg = ""
}

// Snapshot returns a copy of the cached list and its fetch state.
func (m *Module) Snapshot() ([]domain.Product, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]domain.Product, len(m.products))
	copy(products, m.products)
	return products, m.errMsg, m.loading
}

// refreshService handles the refresh service request.
func (m *Module) refreshService(ctx context.Context, _ RefreshRequest, _ *mono.Msg) (RefreshResponse, error) {
	m.Refresh(ctx)

	products, errMsg, _ := m.Snapshot()
	return RefreshResponse{Count: len(products), Error: errMsg}, nil
}

// listService handles the list service request.
func (m *Module) listService(_ context.Context, _ ListRequest, _ *mono.Msg) (ListResponse, error) {
	products, errMsg, loading := m.Snapshot()
	return ListResponse{Products: products, Error: errMsg, Loading: loading}, nil
}

// getService handles the get service request with a direct backend lookup.
func (m *Module) getService(ctx context.Context, req GetRequest, _ *mono.Msg) (GetResponse, error) {
	product, err := m.client.GetProduct(ctx, req.ID)
	if err != nil {
		return GetResponse{}, err
	}
	return GetResponse{Product: *product}, nil
}

// searchService handles the search service request.
func (m *Module) searchService(ctx context.Context, req SearchRequest, _ *mono.Msg) (SearchResponse, error) {
	products, err := m.client.SearchProducts(ctx, req.Keyword)
	if err != nil {
		return SearchResponse{}, err
	}
	return SearchResponse{Products: products}, nil
}

// fetchAllService handles the fetch-all service request. Unlike list it
// always performs a backend round-trip and never touches the cached list.
func (m *Module) fetchAllService(ctx context.Context, _ FetchAllRequest, _ *mono.Msg) (FetchAllResponse, error) {
	products, err := m.client.ListProducts(ctx)
	if err != nil {
		return FetchAllResponse{}, err
	}
	return FetchAllResponse{Products: products}, nil
}

// updateService handles the update service request.
func (m *Module) updateService(ctx context.Context, req UpdateRequest, _ *mono.Msg) (UpdateResponse, error) {
	updated, err := m.client.UpdateProduct(ctx, req.ID, req.Product, req.Image, req.ImageName, req.ImageType)
	if err != nil {
		return UpdateResponse{}, err
	}
	return UpdateResponse{Product: *updated}, nil
}

// deleteService handles the delete service request.
func (m *Module) deleteService(ctx context.Context, req DeleteRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.client.DeleteProduct(ctx, req.ID); err != nil {
		return DeleteResponse{Deleted: false}, err
	}
	return DeleteResponse{Deleted: true}, nil
}
