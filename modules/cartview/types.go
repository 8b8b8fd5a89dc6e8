package cartview

import "context"

// View is the reconciled cart as returned to callers.
type View struct {
	Items          []ReconciledItem `json:"items"`
	Total          float64          `json:"total"`
	FormattedTotal string           `json:"formattedTotal"`
}

// GetRequest asks for the current reconciled cart.
type GetRequest struct{}

// GetResponse carries the current view. Stale is set when the last
// rebuild could not reach the backend and the view predates the cart's
// latest change.
type GetResponse struct {
	View  View   `json:"view"`
	Stale bool   `json:"stale"`
	Error string `json:"error,omitempty"`
}

// IncreaseRequest bumps the quantity of one line, bounded by the
// product's available stock.
type IncreaseRequest struct {
	ProductID int64 `json:"productId"`
}

// IncreaseResponse carries the adjusted view. Error is set when the
// product is not in the cart or already at its stock limit.
type IncreaseResponse struct {
	View  View   `json:"view"`
	Error string `json:"error,omitempty"`
}

// DecreaseRequest lowers the quantity of one line, floored at 1.
type DecreaseRequest struct {
	ProductID int64 `json:"productId"`
}

// DecreaseResponse carries the adjusted view.
type DecreaseResponse struct {
	View  View   `json:"view"`
	Error string `json:"error,omitempty"`
}

// ViewPort is the interface other modules use to read and adjust the
// reconciled cart.
type ViewPort interface {
	Get(ctx context.Context) (*GetResponse, error)
	Increase(ctx context.Context, productID int64) (*IncreaseResponse, error)
	Decrease(ctx context.Context, productID int64) (*DecreaseResponse, error)
}
