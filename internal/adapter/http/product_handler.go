package http

import (
	"context"
	"net/http"
	"time"

	"github.com/basit438/popacart-backend/internal/adapter/http/middleware"
	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products usecase.ProductRepo
}

func NewProductHandler(products usecase.ProductRepo) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductReq struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Brand       string             `json:"brand" binding:"required"`
	Category    string             `json:"category" binding:"required"`
	Price       decimal.Decimal    `json:"price" binding:"required"`
	Discount    decimal.Decimal    `json:"discount"`
	Sizes       []entity.SizeStock `json:"sizes"`
	Colors      []entity.Color     `json:"colors"`
	Stock       int64              `json:"stock"`
}

// CreateProduct handles POST /product/create-product (seller or admin).
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product payload"})
		return
	}

	p := &entity.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		Discount:    req.Discount,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Stock:       req.Stock,
		OwnerID:     middleware.UserID(c),
	}
	if p.Stock == 0 {
		for _, s := range p.Sizes {
			p.Stock += s.Stock
		}
	}
	if err := p.Validate(); err != nil {
		writeError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.products.Create(ctx, p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": productJSON(p)})
}

// GetProduct handles GET /product/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	p, err := h.products.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": productJSON(p)})
}

func productJSON(p *entity.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"brand":       p.Brand,
		"category":    p.Category,
		"price":       p.Price,
		"discount":    p.Discount,
		"finalPrice":  p.FinalPrice(),
		"sizes":       p.Sizes,
		"colors":      p.Colors,
		"stock":       p.Stock,
		"owner":       p.OwnerID,
	}
}
