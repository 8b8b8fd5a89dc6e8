package catalog

import (
	"context"

	domain "github.com/example/storefront/domain/catalog"
)

// RefreshRequest is the request for refreshing the cached product list.
type RefreshRequest struct{}

// RefreshResponse reports the state of the list after the refresh.
type RefreshResponse struct {
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// ListRequest is the request for the cached product list.
type ListRequest struct{}

// ListResponse carries the cached list together with the fetch state.
// Error is empty when the last refresh succeeded; Loading stays true until
// the first refresh completes either way.
type ListResponse struct {
	Products []domain.Product `json:"products"`
	Error    string           `json:"error,omitempty"`
	Loading  bool             `json:"loading"`
}

// GetRequest is the request for a single product.
type GetRequest struct {
	ID int64 `json:"id"`
}

// GetResponse carries a single product.
type GetResponse struct {
	Product domain.Product `json:"product"`
}

// SearchRequest is the request for a keyword search.
type SearchRequest struct {
	Keyword string `json:"keyword"`
}

// SearchResponse carries the matching products.
type SearchResponse struct {
	Products []domain.Product `json:"products"`
}

// FetchAllRequest asks for a fresh backend round-trip, bypassing the
// cached list.
type FetchAllRequest struct{}

// FetchAllResponse carries the freshly fetched catalog.
type FetchAllResponse struct {
	Products []domain.Product `json:"products"`
}

// UpdateRequest submits a product's full updated representation. Image may
// be empty, which tells the backend to keep the stored image.
type UpdateRequest struct {
	ID        int64          `json:"id"`
	Product   domain.Product `json:"product"`
	Image     []byte         `json:"image,omitempty"`
	ImageName string         `json:"image_name,omitempty"`
	ImageType string         `json:"image_type,omitempty"`
}

// UpdateResponse carries the updated product.
type UpdateResponse struct {
	Product domain.Product `json:"product"`
}

// DeleteRequest is the request for deleting a product.
type DeleteRequest struct {
	ID int64 `json:"id"`
}

// DeleteResponse is the response after deleting a product.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// CatalogPort is the interface dependent modules use to reach the catalog.
type CatalogPort interface {
	Refresh(ctx context.Context) (*RefreshResponse, error)
	List(ctx context.Context) (*ListResponse, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	FetchAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, req *UpdateRequest) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
