package http

import (
	"context"
	"net/http"
	"time"

	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CouponHandler struct {
	coupons *usecase.CouponService
}

func NewCouponHandler(coupons *usecase.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type createCouponReq struct {
	Code          string           `json:"code" binding:"required"`
	DiscountType  string           `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal  `json:"discountValue" binding:"required"`
	MinPurchase   decimal.Decimal  `json:"minPurchase"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount"`
	UsageLimit    *int64           `json:"usageLimit"`
	ExpiresAt     time.Time        `json:"expiresAt" binding:"required"`
}

// CreateCoupon handles POST /coupon/create (admin only).
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req createCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "please provide all required fields"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	coupon, err := h.coupons.Create(ctx, usecase.CreateCouponInput{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		MaxDiscount:   req.MaxDiscount,
		UsageLimit:    req.UsageLimit,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "coupon created successfully",
		"coupon": gin.H{
			"id":            coupon.ID,
			"code":          coupon.Code,
			"discountType":  coupon.DiscountType,
			"discountValue": coupon.DiscountValue,
			"minPurchase":   coupon.MinPurchase,
			"maxDiscount":   coupon.MaxDiscount,
			"usageLimit":    coupon.UsageLimit,
			"isActive":      coupon.IsActive,
			"expiresAt":     coupon.ExpiresAt,
		},
	})
}
