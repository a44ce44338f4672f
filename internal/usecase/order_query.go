package usecase

import (
	"context"

	"github.com/basit438/popacart-backend/internal/entity"
)

// OrderQuery serves order reads. Status is cache-aside: a hit from the status
// cache overlays the stored row, since the kafka consumer may have written the
// cache moments before the row update landed.
type OrderQuery struct {
	orders OrderStore
	cache  StatusCache
}

func NewOrderQuery(orders OrderStore, cache StatusCache) *OrderQuery {
	return &OrderQuery{orders: orders, cache: cache}
}

func (q *OrderQuery) GetForUser(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	o, err := q.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		// Do not leak existence of other users' orders.
		return nil, entity.ErrOrderNotFound
	}
	if s, ok, _ := q.cache.GetStatus(ctx, orderID); ok {
		o.Status = entity.OrderStatus(s)
	}
	return o, nil
}
