package kafka

import (
	"context"
	"fmt"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
)

// OrderStatusChangedHandler maps fulfillment events onto order transitions.
type OrderStatusChangedHandler struct {
	updater *usecase.OrderStatusUpdater
}

func NewOrderStatusChangedHandler(updater *usecase.OrderStatusUpdater) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{updater: updater}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	switch entity.OrderStatus(ev.Status) {
	case entity.OrderShipped, entity.OrderDelivered, entity.OrderCancelled:
	default:
		return fmt.Errorf("unknown fulfillment status %q", ev.Status)
	}
	return h.updater.Apply(ctx, ev.OrderID, entity.OrderStatus(ev.Status))
}
