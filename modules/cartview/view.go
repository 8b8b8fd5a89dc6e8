// Package cartview maintains the reconciled cart: persisted cart lines
// joined with fresh product data from the backend.
package cartview

import (
	"sort"
	"strconv"
	"strings"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/events"
)

// ReconciledItem is a cart line joined with the product's current backend
// data. Quantity adjustments made on the view are not written back to the
// persisted cart.
type ReconciledItem struct {
	domain.Product
	Quantity int `json:"quantity"`
}

// reconcile joins cart lines with product data by product ID, preserving
// the cart's line order. Lines whose product is no longer known to the
// backend are dropped from the view.
func reconcile(lines []events.CartLine, products []domain.Product) []ReconciledItem {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]ReconciledItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		items = append(items, ReconciledItem{
			Product:  product,
			Quantity: line.Quantity,
		})
	}
	return items
}

// viewTotal sums price times quantity over the reconciled items.
func viewTotal(items []ReconciledItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// snapshotKey derives a cache key from the set of product IDs in the cart:
// the sorted unique IDs joined with commas. Quantities do not contribute,
// so quantity-only changes reuse the same cached product data.
func snapshotKey(lines []events.CartLine) string {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
