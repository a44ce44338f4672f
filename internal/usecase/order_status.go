package usecase

import (
	"context"
	"fmt"

	"github.com/basit438/popacart-backend/internal/entity"
)

// OrderStatusUpdater applies fulfillment-driven transitions coming off the
// event stream. Transitions are conditional updates keyed on the current
// status, so replayed or out-of-order events cannot regress an order.
type OrderStatusUpdater struct {
	orders OrderStore
	cache  StatusCache
}

func NewOrderStatusUpdater(orders OrderStore, cache StatusCache) *OrderStatusUpdater {
	return &OrderStatusUpdater{orders: orders, cache: cache}
}

func (u *OrderStatusUpdater) Apply(ctx context.Context, orderID string, to entity.OrderStatus) error {
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status == to {
		return nil // already applied
	}
	if !o.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", entity.ErrInvalidTransition, o.Status, to)
	}
	ok, err := u.orders.UpdateStatusIf(ctx, orderID, o.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race with another consumer; the event will be redelivered
		// against the fresh status if it still matters.
		return nil
	}
	return u.cache.SetStatus(ctx, orderID, string(to))
}
