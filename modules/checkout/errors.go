package checkout

import "errors"

// ErrEmptyCart is returned when checkout is attempted with nothing in
// the cart.
var ErrEmptyCart = errors.New("cart is empty")
