package cart

import (
	"context"
	"time"

	domain "github.com/example/storefront/domain/catalog"
)

// LineItem is a cart line as exposed to other modules: the product id and
// quantity plus the product snapshot captured when the line was created.
type LineItem struct {
	ProductID int64          `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Product   domain.Product `json:"product"`
	AddedAt   time.Time      `json:"added_at"`
}

// AddRequest is the request for adding a product to the cart.
type AddRequest struct {
	Product domain.Product `json:"product"`
}

// AddResponse carries the cart after the add.
type AddResponse struct {
	Items []LineItem `json:"items"`
}

// RemoveRequest is the request for removing a line item.
type RemoveRequest struct {
	ProductID int64 `json:"product_id"`
}

// RemoveResponse carries the cart after the remove. Removed is false when
// the id was not in the cart (a no-op, not an error).
type RemoveResponse struct {
	Removed bool       `json:"removed"`
	Items   []LineItem `json:"items"`
}

// ClearRequest is the request for emptying the cart.
type ClearRequest struct{}

// ClearResponse is the response after emptying the cart.
type ClearResponse struct {
	Cleared bool `json:"cleared"`
}

// ListRequest is the request for the current cart contents.
type ListRequest struct{}

// ListResponse carries the current cart contents in insertion order.
type ListResponse struct {
	Items []LineItem `json:"items"`
	Total int        `json:"total"`
}

// CartPort is the interface dependent modules use to reach the cart store.
type CartPort interface {
	Add(ctx context.Context, product domain.Product) ([]LineItem, error)
	Remove(ctx context.Context, productID int64) (bool, []LineItem, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]LineItem, error)
}
