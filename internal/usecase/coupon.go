package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponService struct {
	coupons CouponRepo
}

func NewCouponService(coupons CouponRepo) *CouponService {
	return &CouponService{coupons: coupons}
}

type CreateCouponInput struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	MinPurchase   decimal.Decimal
	MaxDiscount   *decimal.Decimal
	UsageLimit    *int64
	ExpiresAt     time.Time
}

func (s *CouponService) Create(ctx context.Context, in CreateCouponInput) (*entity.Coupon, error) {
	c := &entity.Coupon{
		ID:            uuid.NewString(),
		Code:          strings.ToUpper(strings.TrimSpace(in.Code)),
		DiscountType:  entity.DiscountType(in.DiscountType),
		DiscountValue: in.DiscountValue,
		MinPurchase:   in.MinPurchase,
		MaxDiscount:   in.MaxDiscount,
		UsageLimit:    in.UsageLimit,
		IsActive:      true,
	}
	c.ExpiresAt = in.ExpiresAt
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.coupons.GetByCode(ctx, c.Code); err == nil {
		return nil, entity.ErrCouponExists
	}
	if err := s.coupons.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Evaluate resolves a code and prices its discount against a purchase total.
// It mutates nothing: the usage counters move inside the checkout
// transaction, where the decrement is conditional and race-safe.
func (s *CouponService) Evaluate(ctx context.Context, code string, purchaseTotal decimal.Decimal) (*entity.Coupon, decimal.Decimal, error) {
	coupon, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, decimal.Zero, err
	}
	if err := coupon.Redeemable(time.Now(), purchaseTotal); err != nil {
		return nil, decimal.Zero, err
	}
	return coupon, coupon.DiscountFor(purchaseTotal), nil
}
