package usecase

import (
	"context"

	"github.com/basit438/popacart-backend/internal/entity"
)

type ProductRepoMock struct {
	CreateFunc   func(ctx context.Context, p *entity.Product) error
	GetByIDFunc  func(ctx context.Context, id string) (*entity.Product, error)
	GetByIDsFunc func(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}

func (m *ProductRepoMock) Create(ctx context.Context, p *entity.Product) error {
	return m.CreateFunc(ctx, p)
}
func (m *ProductRepoMock) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *ProductRepoMock) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	return m.GetByIDsFunc(ctx, ids)
}

type CartRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*entity.Cart, error)
	SaveFunc        func(ctx context.Context, c *entity.Cart) error
}

func (m *CartRepoMock) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	return m.GetByUserIDFunc(ctx, userID)
}
func (m *CartRepoMock) Save(ctx context.Context, c *entity.Cart) error {
	return m.SaveFunc(ctx, c)
}

type CouponRepoMock struct {
	CreateFunc    func(ctx context.Context, c *entity.Coupon) error
	GetByCodeFunc func(ctx context.Context, code string) (*entity.Coupon, error)
}

func (m *CouponRepoMock) Create(ctx context.Context, c *entity.Coupon) error {
	return m.CreateFunc(ctx, c)
}
func (m *CouponRepoMock) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	return m.GetByCodeFunc(ctx, code)
}

type OrderStoreMock struct {
	CheckoutFunc       func(ctx context.Context, o *entity.Order) error
	GetByIDFunc        func(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatusIfFunc func(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error)
}

func (m *OrderStoreMock) Checkout(ctx context.Context, o *entity.Order) error {
	return m.CheckoutFunc(ctx, o)
}
func (m *OrderStoreMock) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *OrderStoreMock) UpdateStatusIf(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	return m.UpdateStatusIfFunc(ctx, id, from, to)
}

// idemNoop satisfies IdempotencyStore for flows without an idempotency key.
type idemNoop struct{}

func (idemNoop) TryLock(context.Context, string, string) (bool, error)  { return true, nil }
func (idemNoop) Remember(context.Context, string, string, string) error { return nil }
func (idemNoop) Recall(context.Context, string, string) (string, bool, error) {
	return "", false, nil
}

type eventsRecorder struct {
	published []OrderCreatedMsg
	err       error
}

func (r *eventsRecorder) PublishOrderCreated(_ context.Context, msg OrderCreatedMsg) error {
	if r.err != nil {
		return r.err
	}
	r.published = append(r.published, msg)
	return nil
}

type statusCacheMock struct {
	SetStatusFunc func(ctx context.Context, orderID, status string) error
	GetStatusFunc func(ctx context.Context, orderID string) (string, bool, error)
}

func (m *statusCacheMock) SetStatus(ctx context.Context, orderID, status string) error {
	return m.SetStatusFunc(ctx, orderID, status)
}
func (m *statusCacheMock) GetStatus(ctx context.Context, orderID string) (string, bool, error) {
	return m.GetStatusFunc(ctx, orderID)
}
