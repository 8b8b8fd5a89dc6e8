package cartview

import (
	"context"
	"log"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/money"
	"github.com/example/storefront/events"
	"github.com/go-monolith/mono"
)

// rebuild replaces the view from a fresh set of cart lines. When the
// backend cannot be reached the previous items are kept and the view is
// marked stale.
func (m *Module) rebuild(ctx context.Context, lines []events.CartLine) {
	m.mu.Lock()
	m.lines = append(m.lines[:0:0], lines...)
	m.mu.Unlock()

	if len(lines) == 0 {
		m.mu.Lock()
		m.items = nil
		m.stale = false
		m.mu.Unlock()
		return
	}

	key := snapshotKey(lines)
	products, fromCache, err := m.fetchProducts(ctx, key)
	if err != nil {
		log.Printf("[cartview] Rebuild failed, keeping previous view: %v", err)
		m.mu.Lock()
		m.stale = true
		m.mu.Unlock()
		return
	}

	items := reconcile(lines, products)

	if m.cache != nil && !fromCache {
		subset := make([]domain.Product, len(items))
		for i, item := range items {
			subset[i] = item.Product
		}
		if err := m.cache.Set(ctx, key, subset); err != nil {
			log.Printf("[cartview] Cache write failed: %v", err)
		}
	}

	m.mu.Lock()
	m.items = items
	m.stale = false
	m.mu.Unlock()
}

// fetchProducts returns product data for the given snapshot key, from the
// cache when possible. Concurrent rebuilds for the same key share one
// backend fetch.
func (m *Module) fetchProducts(ctx context.Context, key string) ([]domain.Product, bool, error) {
	if m.cache != nil {
		var cached []domain.Product
		found, err := m.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[cartview] Cache read failed, fetching from backend: %v", err)
		} else if found {
			return cached, true, nil
		}
	}

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		return m.catalogPort.FetchAll(ctx)
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]domain.Product), false, nil
}

// snapshotView copies the current items into a View.
func (m *Module) snapshotView() View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]ReconciledItem, len(m.items))
	copy(items, m.items)
	total := viewTotal(items)
	return View{
		Items:          items,
		Total:          total,
		FormattedTotal: money.Format(total),
	}
}

func (m *Module) getService(_ context.Context, _ GetRequest, _ *mono.Msg) (GetResponse, error) {
	m.mu.RLock()
	stale := m.stale
	m.mu.RUnlock()

	return GetResponse{View: m.snapshotView(), Stale: stale}, nil
}

func (m *Module) increaseService(_ context.Context, req IncreaseRequest, _ *mono.Msg) (IncreaseResponse, error) {
	m.mu.Lock()
	var adjusted bool
	var errMsg string
	for i := range m.items {
		if m.items[i].ID != req.ProductID {
			continue
		}
		if m.items[i].Quantity >= m.items[i].StockQuantity {
			errMsg = ErrStockLimit.Error()
		} else {
			m.items[i].Quantity++
		}
		adjusted = true
		break
	}
	m.mu.Unlock()

	if !adjusted {
		return IncreaseResponse{View: m.snapshotView(), Error: ErrNotInCart.Error()}, nil
	}
	return IncreaseResponse{View: m.snapshotView(), Error: errMsg}, nil
}

func (m *Module) decreaseService(_ context.Context, req DecreaseRequest, _ *mono.Msg) (DecreaseResponse, error) {
	m.mu.Lock()
	var found bool
	for i := range m.items {
		if m.items[i].ID != req.ProductID {
			continue
		}
		if m.items[i].Quantity > 1 {
			m.items[i].Quantity--
		}
		found = true
		break
	}
	m.mu.Unlock()

	if !found {
		return DecreaseResponse{View: m.snapshotView(), Error: ErrNotInCart.Error()}, nil
	}
	return DecreaseResponse{View: m.snapshotView()}, nil
}
