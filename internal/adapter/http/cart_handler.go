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

type CartHandler struct {
	carts *usecase.CartService
}

func NewCartHandler(carts *usecase.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addToCartReq struct {
	Products []struct {
		ProductID     string        `json:"productId" binding:"required"`
		Quantity      int64         `json:"quantity" binding:"required"`
		SelectedColor *entity.Color `json:"selectedColor"`
		SelectedSize  string        `json:"selectedSize"`
	} `json:"products" binding:"required,min=1,dive"`
}

// AddToCart handles POST /cart/add.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "products must be a non-empty array"})
		return
	}

	lines := make([]entity.CartLine, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, entity.CartLine{
			ProductID:     p.ProductID,
			Quantity:      p.Quantity,
			SelectedColor: p.SelectedColor,
			SelectedSize:  p.SelectedSize,
		})
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	cart, err := h.carts.AddLines(ctx, middleware.UserID(c), lines)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cartJSON(cart)})
}

// GetCart handles GET /cart with populated product detail per line.
func (h *CartHandler) GetCart(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	view, err := h.carts.View(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view})
}

type updateQuantityReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity"`
}

// UpdateQuantity handles PUT /cart/update-quantity.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product ID or quantity"})
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	cart, err := h.carts.UpdateQuantity(ctx, middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cartJSON(cart)})
}

type removeItemReq struct {
	ProductID string `json:"productId" binding:"required"`
}

// RemoveItem handles DELETE /cart/remove-item. Matching is by product only:
// every color and size variant of the product goes.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req removeItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "product ID is required"})
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	cart, err := h.carts.RemoveLine(ctx, middleware.UserID(c), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cartJSON(cart)})
}

// ClearCart handles DELETE /cart/clear.
func (h *CartHandler) ClearCart(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.carts.Clear(ctx, middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "cart cleared successfully"})
}

func (h *CartHandler) reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 3*time.Second)
}

func cartJSON(cart *entity.Cart) gin.H {
	lines := cart.Lines
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return gin.H{
		"cartId":     cart.ID,
		"userId":     cart.UserID,
		"products":   lines,
		"totalPrice": cart.TotalPrice,
	}
}
