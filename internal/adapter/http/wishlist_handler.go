package http

import (
	"context"
	"net/http"
	"time"

	"github.com/basit438/popacart-backend/internal/adapter/http/middleware"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	wishlist *usecase.WishlistService
}

func NewWishlistHandler(wishlist *usecase.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

type wishlistAddReq struct {
	ProductID string `json:"productId" binding:"required"`
}

// Add handles POST /wishlist/add. Toggle semantics: a product already in the
// wishlist is removed instead.
func (h *WishlistHandler) Add(c *gin.Context) {
	var req wishlistAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "product ID is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	added, err := h.wishlist.Toggle(ctx, middleware.UserID(c), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	msg := "product removed from wishlist"
	if added {
		msg = "product added to wishlist"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// List handles GET /wishlist with populated products.
func (h *WishlistHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	products, err := h.wishlist.List(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "wishlist": out})
}
