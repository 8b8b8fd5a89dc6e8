package cartview

import (
	"testing"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/events"
)

func product(id int64, price float64, stock int) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          "Product",
		Brand:         "Brand",
		Price:         price,
		Category:      "Electronics",
		StockQuantity: stock,
	}
}

func TestReconcileJoinsByID(t *testing.T) {
	lines := []events.CartLine{
		{ProductID: 3, Quantity: 2},
		{ProductID: 1, Quantity: 1},
	}
	products := []domain.Product{
		product(1, 100, 5),
		product(2, 200, 5),
		product(3, 10, 5),
	}

	items := reconcile(lines, products)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 3 || items[0].Quantity != 2 {
		t.Errorf("expected line order preserved, got item 0 = %+v", items[0])
	}
	if items[1].ID != 1 || items[1].Quantity != 1 {
		t.Errorf("unexpected item 1 = %+v", items[1])
	}
}

func TestReconcileDropsUnknownProducts(t *testing.T) {
	lines := []events.CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 4},
	}
	products := []domain.Product{product(1, 100, 5)}

	items := reconcile(lines, products)
	if len(items) != 1 {
		t.Fatalf("expected removed product to be dropped, got %d items", len(items))
	}
	if items[0].ID != 1 {
		t.Errorf("unexpected surviving item %+v", items[0])
	}
}

func TestViewTotal(t *testing.T) {
	items := []ReconciledItem{
		{Product: product(1, 10, 5), Quantity: 2},
		{Product: product(2, 249.50, 5), Quantity: 1},
	}
	if got, want := viewTotal(items), 269.50; got != want {
		t.Errorf("viewTotal() = %v, want %v", got, want)
	}
	if got := viewTotal(nil); got != 0 {
		t.Errorf("viewTotal(nil) = %v, want 0", got)
	}
}

func TestSnapshotKey(t *testing.T) {
	tests := []struct {
		name  string
		lines []events.CartLine
		want  string
	}{
		{"empty", nil, ""},
		{"single", []events.CartLine{{ProductID: 7, Quantity: 3}}, "7"},
		{
			"sorted",
			[]events.CartLine{{ProductID: 9, Quantity: 1}, {ProductID: 2, Quantity: 1}, {ProductID: 5, Quantity: 1}},
			"2,5,9",
		},
		{
			"duplicates collapse",
			[]events.CartLine{{ProductID: 4, Quantity: 1}, {ProductID: 4, Quantity: 2}},
			"4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snapshotKey(tt.lines); got != tt.want {
				t.Errorf("snapshotKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshotKeyIgnoresQuantity(t *testing.T) {
	a := snapshotKey([]events.CartLine{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}})
	b := snapshotKey([]events.CartLine{{ProductID: 1, Quantity: 5}, {ProductID: 2, Quantity: 3}})
	if a != b {
		t.Errorf("quantity change produced a new key: %q vs %q", a, b)
	}
}
