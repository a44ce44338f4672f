package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
)

type orderStoreStub struct {
	order   *entity.Order
	updates int
}

func (s *orderStoreStub) Checkout(context.Context, *entity.Order) error { return nil }

func (s *orderStoreStub) GetByID(_ context.Context, id string) (*entity.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, entity.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *orderStoreStub) UpdateStatusIf(_ context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	if s.order.Status != from {
		return false, nil
	}
	s.order.Status = to
	s.updates++
	return true, nil
}

type statusCacheStub struct{ last string }

func (s *statusCacheStub) SetStatus(_ context.Context, _, status string) error {
	s.last = status
	return nil
}
func (s *statusCacheStub) GetStatus(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func TestHandleAppliesKnownStatus(t *testing.T) {
	store := &orderStoreStub{order: &entity.Order{ID: "o1", Status: entity.OrderProcessing}}
	cache := &statusCacheStub{}
	h := NewOrderStatusChangedHandler(usecase.NewOrderStatusUpdater(store, cache))

	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{OrderID: "o1", Status: "Shipped"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, store.order.Status)
	assert.Equal(t, "Shipped", cache.last)
}

func TestHandleRejectsUnknownStatus(t *testing.T) {
	store := &orderStoreStub{order: &entity.Order{ID: "o1", Status: entity.OrderProcessing}}
	h := NewOrderStatusChangedHandler(usecase.NewOrderStatusUpdater(store, &statusCacheStub{}))

	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{OrderID: "o1", Status: "Teleported"})
	assert.Error(t, err)
	assert.Zero(t, store.updates)
}

func TestHandleReplayedEventIsNoop(t *testing.T) {
	store := &orderStoreStub{order: &entity.Order{ID: "o1", Status: entity.OrderShipped}}
	h := NewOrderStatusChangedHandler(usecase.NewOrderStatusUpdater(store, &statusCacheStub{}))

	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{OrderID: "o1", Status: "Shipped"})
	require.NoError(t, err)
	assert.Zero(t, store.updates)
}
