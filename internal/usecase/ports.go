package usecase

import (
	"context"

	"github.com/basit438/popacart-backend/internal/entity"
)

type ProductRepo interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs returns the products that exist; missing ids are simply absent
	// from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}

type CartRepo interface {
	// GetByUserID returns entity.ErrCartNotFound when the user has no cart yet.
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	Save(ctx context.Context, c *entity.Cart) error
}

type CouponRepo interface {
	Create(ctx context.Context, c *entity.Coupon) error
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
}

// OrderStore persists orders. Checkout runs the whole placement (order
// insert, cart clear, stock decrement, coupon redemption) in one transaction,
// so a failure anywhere leaves no partial state behind.
type OrderStore interface {
	Checkout(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatusIf(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error)
}

type WishlistRepo interface {
	Has(ctx context.Context, userID, productID string) (bool, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]entity.Product, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// OrderEvents notifies downstream fulfillment that an order exists.
type OrderEvents interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMsg) error
}

// StatusCache keeps a hot copy of order status for the read path.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}
