package usecase

import "github.com/shopspring/decimal"

// OrderCreatedMsg is published to the fulfillment exchange after checkout.
type OrderCreatedMsg struct {
	OrderID        string          `json:"orderId"`
	UserID         string          `json:"userId"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	ItemCount      int             `json:"itemCount"`
	PaymentMethod  string          `json:"paymentMethod"`
}

// OrderStatusChangedMsg arrives from the fulfillment system on Kafka.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"` // Shipped | Delivered | Cancelled
}
