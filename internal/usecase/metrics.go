package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully placed",
	})

	couponsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupons_redeemed_total",
		Help: "Coupons consumed by successful orders",
	})

	stockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_stock_conflicts_total",
		Help: "Order placements aborted because stock ran out",
	})
)
