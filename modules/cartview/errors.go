package cartview

import "errors"

var (
	// ErrNotInCart is returned when a quantity adjustment targets a
	// product that is not in the reconciled view.
	ErrNotInCart = errors.New("product not in cart")

	// ErrStockLimit is returned when an increase would exceed the
	// product's available stock.
	ErrStockLimit = errors.New("cannot add more than available stock")
)
