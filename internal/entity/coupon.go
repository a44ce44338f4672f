package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

var (
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponExists       = errors.New("coupon code already exists")
	ErrCouponInactive     = errors.New("coupon is not active")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")
	ErrMinPurchaseNotMet  = errors.New("minimum purchase not met")
	ErrInvalidCouponInput = errors.New("invalid coupon fields")
)

type Coupon struct {
	ID            string
	Code          string // stored uppercase
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MinPurchase   decimal.Decimal
	MaxDiscount   *decimal.Decimal // percentage-only cap, nil = uncapped
	UsageLimit    *int64           // nil = unlimited
	UsedCount     int64
	IsActive      bool
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

func (c *Coupon) Validate() error {
	if c.Code == "" || !c.DiscountValue.IsPositive() || c.ExpiresAt.IsZero() {
		return ErrInvalidCouponInput
	}
	if c.DiscountType != DiscountPercentage && c.DiscountType != DiscountFixed {
		return ErrInvalidCouponInput
	}
	return nil
}

// Redeemable checks every business rule gating a redemption against the given
// purchase total. The check order is fixed: inactive, expired, exhausted,
// minimum purchase.
func (c *Coupon) Redeemable(now time.Time, purchaseTotal decimal.Decimal) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if !now.Before(c.ExpiresAt) {
		return ErrCouponExpired
	}
	if c.UsageLimit != nil && *c.UsageLimit == 0 {
		return ErrCouponExhausted
	}
	if purchaseTotal.LessThan(c.MinPurchase) {
		return ErrMinPurchaseNotMet
	}
	return nil
}

// DiscountFor computes the discount for a purchase total. Pure: the usage
// counters are untouched. A percentage discount is capped at MaxDiscount when
// set, a fixed discount never exceeds the total.
func (c *Coupon) DiscountFor(purchaseTotal decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case DiscountPercentage:
		d := purchaseTotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		if c.MaxDiscount != nil && d.GreaterThan(*c.MaxDiscount) {
			d = *c.MaxDiscount
		}
		return d
	case DiscountFixed:
		if c.DiscountValue.GreaterThan(purchaseTotal) {
			return purchaseTotal
		}
		return c.DiscountValue
	}
	return decimal.Zero
}
