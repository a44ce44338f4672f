package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("invalid price or discount")
)

// Color is a named swatch the way the storefront renders one.
type Color struct {
	Name string `json:"colorName"`
	Code string `json:"colorCode"`
}

// SizeStock is a per-size stock counter.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int64  `json:"stock"`
}

type Product struct {
	ID          string
	Name        string
	Description string
	Brand       string
	Category    string
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Sizes       []SizeStock
	Colors      []Color
	Stock       int64
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FinalPrice is the unit price actually charged: price minus discount.
func (p *Product) FinalPrice() decimal.Decimal {
	return p.Price.Sub(p.Discount)
}

func (p *Product) Validate() error {
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Discount.IsNegative() || p.Discount.GreaterThanOrEqual(p.Price) {
		return ErrInvalidPrice
	}
	for _, s := range p.Sizes {
		if s.Stock < 0 {
			return ErrInvalidPrice
		}
	}
	return nil
}
