package api

import (
	"time"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/money"
	"github.com/example/storefront/modules/activity"
	"github.com/example/storefront/modules/cartview"
)

// ProductResponse is a product plus its display price.
type ProductResponse struct {
	domain.Product
	FormattedPrice string `json:"formattedPrice"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		Product:        p,
		FormattedPrice: money.Format(p.Price),
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// ListProductsResponse is the HTTP response for the product listing.
// Error carries the last fetch failure; Loading is true until the first
// refresh completes.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Loading  bool              `json:"loading"`
	Error    string            `json:"error,omitempty"`
}

// AddCartItemRequest is the HTTP request for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
}

// CartItemResponse is one reconciled cart line.
type CartItemResponse struct {
	ProductResponse
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartResponse is the HTTP response for the reconciled cart.
type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	Total          float64            `json:"total"`
	FormattedTotal string             `json:"formattedTotal"`
	Stale          bool               `json:"stale,omitempty"`
}

func toCartResponse(view cartview.View, stale bool) CartResponse {
	items := make([]CartItemResponse, len(view.Items))
	for i, item := range view.Items {
		items[i] = CartItemResponse{
			ProductResponse: toProductResponse(item.Product),
			Quantity:        item.Quantity,
			Subtotal:        item.Price * float64(item.Quantity),
		}
	}
	return CartResponse{
		Items:          items,
		Total:          view.Total,
		FormattedTotal: view.FormattedTotal,
		Stale:          stale,
	}
}

// CheckoutResponse is the HTTP response for a completed checkout.
type CheckoutResponse struct {
	OrderRef       string  `json:"orderRef"`
	ItemCount      int     `json:"itemCount"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formattedTotal"`
}

// ActivityResponse is the HTTP response for the activity feed.
type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
}

// RefreshResponse is the HTTP response after a catalog refresh.
type RefreshResponse struct {
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// HealthResponse is the HTTP response for the health check.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
