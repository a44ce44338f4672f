package http

import (
	"github.com/basit438/popacart-backend/internal/adapter/http/middleware"
	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Users    *UserHandler
	Products *ProductHandler
	Carts    *CartHandler
	Coupons  *CouponHandler
	Orders   *OrderHandler
	Wishlist *WishlistHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	user := v1.Group("/user")
	{
		user.POST("/register", h.Users.Register)
		user.POST("/login", h.Users.Login)
	}

	product := v1.Group("/product")
	{
		product.GET("/:id", h.Products.GetProduct)
		product.POST("/create-product",
			authz.Require(string(entity.RoleSeller), string(entity.RoleAdmin)),
			h.Products.CreateProduct)
	}

	cart := v1.Group("/cart", authz.Authenticate())
	{
		cart.POST("/add", h.Carts.AddToCart)
		cart.GET("", h.Carts.GetCart)
		cart.PUT("/update-quantity", h.Carts.UpdateQuantity)
		cart.DELETE("/remove-item", h.Carts.RemoveItem)
		cart.DELETE("/clear", h.Carts.ClearCart)
	}

	coupon := v1.Group("/coupon")
	{
		coupon.POST("/create", authz.Require(string(entity.RoleAdmin)), h.Coupons.CreateCoupon)
	}

	order := v1.Group("/order", authz.Authenticate())
	{
		order.POST("/create-order", h.Orders.CreateOrder)
		order.GET("/:id", h.Orders.GetOrderByID)
	}

	wishlist := v1.Group("/wishlist", authz.Authenticate())
	{
		wishlist.POST("/add", h.Wishlist.Add)
		wishlist.GET("", h.Wishlist.List)
	}

	return r
}
