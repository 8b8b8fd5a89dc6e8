package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/storefront/domain/money"
	"github.com/example/storefront/events"
	"github.com/example/storefront/modules/catalog"
	"github.com/go-monolith/mono"
)

// checkoutService purchases the reconciled cart. Each line becomes one
// product update with the stock reduced by the purchased quantity,
// submitted sequentially in cart order. The first failed update aborts
// the flow and leaves the cart and all earlier updates as they are; there
// is no rollback.
func (m *Module) checkoutService(ctx context.Context, _ CheckoutRequest, _ *mono.Msg) (CheckoutResponse, error) {
	view, err := m.viewPort.Get(ctx)
	if err != nil {
		return CheckoutResponse{Error: fmt.Sprintf("failed to load cart: %v", err)}, nil
	}

	items := view.View.Items
	if len(items) == 0 {
		return CheckoutResponse{Error: ErrEmptyCart.Error()}, nil
	}

	for _, item := range items {
		update := item.Product
		update.StockQuantity = item.StockQuantity - item.Quantity

		if _, err := m.catalogPort.Update(ctx, &catalog.UpdateRequest{
			ID:      update.ID,
			Product: update,
		}); err != nil {
			log.Printf("[checkout] Purchase failed for product %d (%s): %v", item.ID, item.Name, err)
			m.publishFailed(item.ID, err.Error())
			return CheckoutResponse{
				Error: fmt.Sprintf("failed to purchase %s: %v", item.Name, err),
			}, nil
		}
	}

	if err := m.cartPort.Clear(ctx); err != nil {
		log.Printf("[checkout] Warning: failed to clear cart after purchase: %v", err)
	}

	if _, err := m.catalogPort.Refresh(ctx); err != nil {
		log.Printf("[checkout] Warning: post-checkout catalog refresh failed: %v", err)
	}

	orderRef := "ORD-" + m.newOrderRef()
	total := view.View.Total
	m.publishCompleted(orderRef, len(items), total)

	log.Printf("[checkout] Order %s completed: %d items, %s", orderRef, len(items), money.Format(total))
	return CheckoutResponse{
		OrderRef:       orderRef,
		ItemCount:      len(items),
		Total:          total,
		FormattedTotal: money.Format(total),
	}, nil
}

func (m *Module) publishCompleted(orderRef string, itemCount int, total float64) {
	if m.eventBus == nil {
		return
	}
	event := events.CheckoutCompletedEvent{
		OrderRef:    orderRef,
		ItemCount:   itemCount,
		Total:       total,
		CompletedAt: time.Now(),
	}
	if err := events.CheckoutCompletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[checkout] Warning: failed to publish CheckoutCompleted event: %v", err)
	}
}

func (m *Module) publishFailed(productID int64, reason string) {
	if m.eventBus == nil {
		return
	}
	event := events.CheckoutFailedEvent{
		ProductID: productID,
		Reason:    reason,
		FailedAt:  time.Now(),
	}
	if err := events.CheckoutFailedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[checkout] Warning: failed to publish CheckoutFailed event: %v", err)
	}
}
