package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrDuplicateOrder = errors.New("duplicate idempotency key")

type CreateOrderInput struct {
	UserID          string
	IdempotencyKey  string
	CouponCode      string
	PaymentMethod   entity.PaymentMethod
	ShippingAddress entity.ShippingAddress
}

type CreateOrderOutput struct {
	OrderID        string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	Status         entity.OrderStatus
}

// CreateOrder turns the caller's mutable cart into an immutable order.
// The pipeline: load cart, price it from live product snapshots, evaluate the
// coupon, snapshot order items, then hand everything to OrderStore.Checkout,
// which persists the order, empties the cart, decrements stock and redeems
// the coupon in a single transaction. Failures anywhere roll the whole
// placement back.
type CreateOrder struct {
	carts    CartRepo
	products ProductRepo
	coupons  *CouponService
	orders   OrderStore
	idem     IdempotencyStore
	events   OrderEvents
}

func NewCreateOrder(carts CartRepo, products ProductRepo, coupons *CouponService, orders OrderStore, idem IdempotencyStore, events OrderEvents) *CreateOrder {
	return &CreateOrder{carts: carts, products: products, coupons: coupons, orders: orders, idem: idem, events: events}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	if err := in.ShippingAddress.Validate(); err != nil {
		return CreateOrderOutput{}, err
	}
	if err := (entity.Payment{Method: in.PaymentMethod}).ValidateMethod(); err != nil {
		return CreateOrderOutput{}, err
	}

	// Fast path: idempotency recall
	if in.IdempotencyKey != "" {
		id, ok, err := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			logging.FromCtx(ctx).Error("idempotency recall", "user_id", in.UserID, "err", err)
		}
		if ok {
			prev, err := uc.orders.GetByID(ctx, id)
			if err != nil {
				return CreateOrderOutput{OrderID: id, Status: entity.OrderProcessing}, nil
			}
			return CreateOrderOutput{
				OrderID:        prev.ID,
				TotalAmount:    prev.TotalAmount,
				DiscountAmount: prev.DiscountAmount,
				Status:         prev.Status,
			}, nil
		}
		ok, err = uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return CreateOrderOutput{}, err
		}
		if !ok {
			return CreateOrderOutput{}, ErrDuplicateOrder
		}
	}

	cart, err := uc.carts.GetByUserID(ctx, in.UserID)
	if errors.Is(err, entity.ErrCartNotFound) {
		return CreateOrderOutput{}, entity.ErrEmptyCart
	}
	if err != nil {
		return CreateOrderOutput{}, err
	}
	if len(cart.Lines) == 0 {
		return CreateOrderOutput{}, entity.ErrEmptyCart
	}

	// Price from live snapshots. Cart-cached totals are ignored on purpose:
	// the catalog may have drifted since the lines were added.
	prods, err := uc.loadProducts(ctx, cart)
	if err != nil {
		return CreateOrderOutput{}, err
	}

	total := decimal.Zero
	items := make([]entity.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		p, ok := prods[l.ProductID]
		if !ok {
			// Stale line; the product was removed from the catalog.
			continue
		}
		unit := p.FinalPrice()
		lineTotal := unit.Mul(decimal.NewFromInt(l.Quantity))
		total = total.Add(lineTotal)
		items = append(items, entity.OrderItem{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			PriceAtPurchase: unit,
			FinalPrice:      lineTotal,
			SelectedColor:   l.SelectedColor,
			SelectedSize:    l.SelectedSize,
		})
	}
	if len(items) == 0 {
		return CreateOrderOutput{}, entity.ErrEmptyCart
	}

	discount := decimal.Zero
	couponID := ""
	if in.CouponCode != "" {
		coupon, d, err := uc.coupons.Evaluate(ctx, in.CouponCode, total)
		if err != nil {
			return CreateOrderOutput{}, err
		}
		discount = d
		couponID = coupon.ID
	}

	order := &entity.Order{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		Payment:         entity.Payment{Method: in.PaymentMethod, Status: entity.PaymentPending},
		CouponID:        couponID,
		DiscountAmount:  discount,
		TotalAmount:     total,
		Status:          entity.OrderProcessing,
		PlacedAt:        time.Now(),
	}

	if err := uc.orders.Checkout(ctx, order); err != nil {
		if errors.Is(err, entity.ErrInsufficientStock) {
			stockConflicts.Inc()
		}
		return CreateOrderOutput{}, err
	}

	ordersCreated.Inc()
	if couponID != "" {
		couponsRedeemed.Inc()
	}

	// Post-commit side effects are best effort; the order already exists.
	if err := uc.events.PublishOrderCreated(ctx, OrderCreatedMsg{
		OrderID:        order.ID,
		UserID:         order.UserID,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		ItemCount:      len(order.Items),
		PaymentMethod:  string(order.Payment.Method),
	}); err != nil {
		logging.FromCtx(ctx).Error("publish order.created", "order_id", order.ID, "err", err)
	}
	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, order.ID)
	}

	return CreateOrderOutput{
		OrderID:        order.ID,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		Status:         order.Status,
	}, nil
}

func (uc *CreateOrder) loadProducts(ctx context.Context, cart *entity.Cart) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(cart.Lines))
	seen := make(map[string]struct{}, len(cart.Lines))
	for _, l := range cart.Lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return uc.products.GetByIDs(ctx, ids)
}
