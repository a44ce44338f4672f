package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "ONLINE"
	PaymentCOD    PaymentMethod = "COD"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidShipping   = errors.New("incomplete shipping address")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// OrderItem snapshots a cart line at placement time. Prices are copied, never
// referenced, so later catalog changes cannot reach past orders.
type OrderItem struct {
	ProductID       string          `json:"productId"`
	Quantity        int64           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	FinalPrice      decimal.Decimal `json:"finalPrice"` // line total
	SelectedColor   *Color          `json:"selectedColor,omitempty"`
	SelectedSize    string          `json:"selectedSize,omitempty"`
}

type ShippingAddress struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

func (a ShippingAddress) Validate() error {
	if a.FullName == "" || a.PhoneNumber == "" || a.AddressLine1 == "" ||
		a.City == "" || a.PostalCode == "" || a.Country == "" {
		return ErrInvalidShipping
	}
	return nil
}

type Payment struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
}

func (p Payment) ValidateMethod() error {
	if p.Method != PaymentOnline && p.Method != PaymentCOD {
		return ErrInvalidPayment
	}
	return nil
}

type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	ShippingAddress ShippingAddress
	Payment         Payment
	CouponID        string // empty when no coupon was applied
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal // pre-discount
	Status          OrderStatus
	PlacedAt        time.Time
	DeliveredAt     *time.Time
}

// CanTransitionTo gates fulfillment-driven status changes. Delivered and
// cancelled orders are terminal.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	switch s {
	case OrderProcessing:
		return to == OrderShipped || to == OrderCancelled
	case OrderShipped:
		return to == OrderDelivered || to == OrderCancelled
	}
	return false
}
