package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basit438/popacart-backend/internal/entity"
)

var testAddress = entity.ShippingAddress{
	FullName:     "Ada Lovelace",
	PhoneNumber:  "5550100",
	AddressLine1: "12 Analytical Way",
	City:         "London",
	PostalCode:   "EC1",
	Country:      "UK",
}

func save10() *entity.Coupon {
	cap := price("15")
	limit := int64(3)
	return &entity.Coupon{
		ID:            "coup-1",
		Code:          "SAVE10",
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: price("10"),
		MinPurchase:   price("50"),
		MaxDiscount:   &cap,
		UsageLimit:    &limit,
		IsActive:      true,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	}
}

func couponsWith(c *entity.Coupon) *CouponService {
	return NewCouponService(&CouponRepoMock{
		GetByCodeFunc: func(_ context.Context, code string) (*entity.Coupon, error) {
			if c != nil && c.Code == code {
				return c, nil
			}
			return nil, entity.ErrCouponNotFound
		},
	})
}

func TestCreateOrderAppliesCappedPercentageCoupon(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("110"), Discount: price("10"), Stock: 5}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 2}},
	}}

	var placed *entity.Order
	orders := &OrderStoreMock{
		CheckoutFunc: func(_ context.Context, o *entity.Order) error {
			placed = o
			return nil
		},
	}
	events := &eventsRecorder{}
	uc := NewCreateOrder(store.repo(), catalog(shirt), couponsWith(save10()), orders, idemNoop{}, events)

	out, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		CouponCode:      "save10",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: testAddress,
	})
	require.NoError(t, err)

	// 2 * 100 = 200; 10% would be 20, capped at 15.
	assert.True(t, out.TotalAmount.Equal(price("200")), "got %s", out.TotalAmount)
	assert.True(t, out.DiscountAmount.Equal(price("15")), "got %s", out.DiscountAmount)
	assert.Equal(t, entity.OrderProcessing, out.Status)

	require.NotNil(t, placed)
	assert.Equal(t, "coup-1", placed.CouponID)
	require.Len(t, placed.Items, 1)
	assert.True(t, placed.Items[0].PriceAtPurchase.Equal(price("100")), "snapshot of final unit price")
	assert.True(t, placed.Items[0].FinalPrice.Equal(price("200")), "line total")

	require.Len(t, events.published, 1)
	assert.Equal(t, placed.ID, events.published[0].OrderID)
	assert.Equal(t, 1, events.published[0].ItemCount)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	orders := &OrderStoreMock{
		CheckoutFunc: func(context.Context, *entity.Order) error {
			t.Fatal("checkout must not run for an empty cart")
			return nil
		},
	}

	for name, store := range map[string]*memCarts{
		"no cart row": {},
		"zero lines":  {cart: &entity.Cart{UserID: "u1"}},
	} {
		t.Run(name, func(t *testing.T) {
			uc := NewCreateOrder(store.repo(), catalog(), couponsWith(nil), orders, idemNoop{}, &eventsRecorder{})
			_, err := uc.Execute(context.Background(), CreateOrderInput{
				UserID:          "u1",
				PaymentMethod:   entity.PaymentOnline,
				ShippingAddress: testAddress,
			})
			assert.ErrorIs(t, err, entity.ErrEmptyCart)
		})
	}
}

func TestCreateOrderAllLinesStale(t *testing.T) {
	// Every product in the cart disappeared from the catalog.
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "gone", Quantity: 1}},
	}}
	uc := NewCreateOrder(store.repo(), catalog(), couponsWith(nil), &OrderStoreMock{}, idemNoop{}, &eventsRecorder{})

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: testAddress,
	})
	assert.ErrorIs(t, err, entity.ErrEmptyCart)
}

func TestCreateOrderCouponFailureAborts(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("10"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 1}},
	}}
	orders := &OrderStoreMock{
		CheckoutFunc: func(context.Context, *entity.Order) error {
			t.Fatal("checkout must not run when the coupon is rejected")
			return nil
		},
	}

	expired := save10()
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	uc := NewCreateOrder(store.repo(), catalog(shirt), couponsWith(expired), orders, idemNoop{}, &eventsRecorder{})

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		CouponCode:      "SAVE10",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: testAddress,
	})
	assert.ErrorIs(t, err, entity.ErrCouponExpired)
}

func TestCreateOrderValidatesInput(t *testing.T) {
	uc := NewCreateOrder(&CartRepoMock{}, catalog(), couponsWith(nil), &OrderStoreMock{}, idemNoop{}, &eventsRecorder{})

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: entity.ShippingAddress{FullName: "no address"},
	})
	assert.ErrorIs(t, err, entity.ErrInvalidShipping)

	_, err = uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		PaymentMethod:   "WIRE",
		ShippingAddress: testAddress,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidPayment)
}

func TestCreateOrderInsufficientStockSurfaces(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("10"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 99}},
	}}
	orders := &OrderStoreMock{
		CheckoutFunc: func(context.Context, *entity.Order) error {
			return entity.ErrInsufficientStock
		},
	}
	events := &eventsRecorder{}
	uc := NewCreateOrder(store.repo(), catalog(shirt), couponsWith(nil), orders, idemNoop{}, events)

	_, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		PaymentMethod:   entity.PaymentOnline,
		ShippingAddress: testAddress,
	})
	assert.ErrorIs(t, err, entity.ErrInsufficientStock)
	assert.Empty(t, events.published, "no event for a failed placement")
}

type idemRecorder struct {
	locked     map[string]string
	remembered map[string]string
}

func newIdemRecorder() *idemRecorder {
	return &idemRecorder{locked: map[string]string{}, remembered: map[string]string{}}
}

func (r *idemRecorder) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := scope + "/" + key
	if _, ok := r.locked[k]; ok {
		return false, nil
	}
	r.locked[k] = "1"
	return true, nil
}

func (r *idemRecorder) Remember(_ context.Context, scope, key, value string) error {
	r.remembered[scope+"/"+key] = value
	return nil
}

func (r *idemRecorder) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := r.remembered[scope+"/"+key]
	return v, ok, nil
}

func TestCreateOrderIdempotencyReplay(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("25"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 1}},
	}}

	checkouts := 0
	var placed *entity.Order
	orders := &OrderStoreMock{
		CheckoutFunc: func(_ context.Context, o *entity.Order) error {
			checkouts++
			placed = o
			return nil
		},
		GetByIDFunc: func(_ context.Context, id string) (*entity.Order, error) {
			if placed != nil && placed.ID == id {
				return placed, nil
			}
			return nil, entity.ErrOrderNotFound
		},
	}
	idem := newIdemRecorder()
	uc := NewCreateOrder(store.repo(), catalog(shirt), couponsWith(nil), orders, idem, &eventsRecorder{})

	in := CreateOrderInput{
		UserID:          "u1",
		IdempotencyKey:  "req-42",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: testAddress,
	}
	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, checkouts, "replay must not place a second order")
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
}

func TestCreateOrderConcurrentDuplicateKey(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("25"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 1}},
	}}
	// Lock is held by an in-flight request, nothing remembered yet.
	idem := newIdemRecorder()
	idem.locked["u1/req-42"] = "1"

	uc := NewCreateOrder(store.repo(), catalog(shirt), couponsWith(nil), &OrderStoreMock{}, idem, &eventsRecorder{})
	_, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		IdempotencyKey:  "req-42",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: testAddress,
	})
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

type idemRecallBroken struct{ idemRecorder }

func (r *idemRecallBroken) Recall(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("redis timeout")
}

func TestCreateOrderRecallFailureFallsThroughToLock(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("25"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 1}},
	}}
	orders := &OrderStoreMock{
		CheckoutFunc: func(context.Context, *entity.Order) error { return nil },
	}
	idem := &idemRecallBroken{idemRecorder: *newIdemRecorder()}
	uc := NewCreateOrder(store.repo(), catalog(shirt), couponsWith(nil), orders, idem, &eventsRecorder{})

	out, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		IdempotencyKey:  "req-42",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: testAddress,
	})
	require.NoError(t, err, "a broken recall degrades to the lock, not to a failure")
	assert.NotEmpty(t, out.OrderID)
	assert.Contains(t, idem.locked, "u1/req-42", "lock still guards the placement")
}

func TestCreateOrderPublishFailureDoesNotFailPlacement(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("25"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 1}},
	}}
	orders := &OrderStoreMock{
		CheckoutFunc: func(context.Context, *entity.Order) error { return nil },
	}
	events := &eventsRecorder{err: errors.New("broker down")}
	uc := NewCreateOrder(store.repo(), catalog(shirt), couponsWith(nil), orders, idemNoop{}, events)

	out, err := uc.Execute(context.Background(), CreateOrderInput{
		UserID:          "u1",
		PaymentMethod:   entity.PaymentCOD,
		ShippingAddress: testAddress,
	})
	require.NoError(t, err, "the order is already committed when publishing fails")
	assert.NotEmpty(t, out.OrderID)
}
