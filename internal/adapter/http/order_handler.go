package http

import (
	"context"
	"net/http"
	"time"

	"github.com/basit438/popacart-backend/internal/adapter/http/middleware"
	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	create *usecase.CreateOrder
	query  *usecase.OrderQuery
}

func NewOrderHandler(create *usecase.CreateOrder, query *usecase.OrderQuery) *OrderHandler {
	return &OrderHandler{create: create, query: query}
}

type createOrderReq struct {
	Coupon  string `json:"coupon"`
	Payment struct {
		Method string `json:"method" binding:"required"`
	} `json:"payment" binding:"required"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress" binding:"required"`
}

// CreateOrder handles POST /order/create-order: the cart becomes an order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid order payload"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated submissions

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:          middleware.UserID(c),
		IdempotencyKey:  idemKey,
		CouponCode:      req.Coupon,
		PaymentMethod:   entity.PaymentMethod(req.Payment.Method),
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "order created successfully",
		"orderId":        out.OrderID,
		"totalAmount":    out.TotalAmount,
		"discountAmount": out.DiscountAmount,
		"status":         out.Status,
	})
}

// GetOrderByID handles GET /order/:id for the order's owner.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	o, err := h.query.GetForUser(ctx, middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":              o.ID,
			"userId":          o.UserID,
			"items":           o.Items,
			"shippingAddress": o.ShippingAddress,
			"payment":         o.Payment,
			"couponId":        o.CouponID,
			"discountAmount":  o.DiscountAmount,
			"totalAmount":     o.TotalAmount,
			"orderStatus":     o.Status,
			"placedAt":        o.PlacedAt,
			"deliveredAt":     o.DeliveredAt,
		},
	})
}
