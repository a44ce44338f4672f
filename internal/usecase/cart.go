package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/shopspring/decimal"
)

// CartService owns every mutation of a user's cart. Totals are never trusted
// from storage: each mutation re-fetches the referenced products and sums
// live final prices, so price drift in the catalog is always reflected.
type CartService struct {
	products ProductRepo
	carts    CartRepo
}

func NewCartService(products ProductRepo, carts CartRepo) *CartService {
	return &CartService{products: products, carts: carts}
}

// AddLines validates the whole batch up front: any bad quantity or unknown
// product rejects all lines. Valid lines are merged into the existing cart by
// (product, color, size) key, creating the cart on first use.
func (s *CartService) AddLines(ctx context.Context, userID string, lines []entity.CartLine) (*entity.Cart, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: products must be a non-empty array", entity.ErrInvalidQuantity)
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, err := s.products.GetByID(ctx, l.ProductID); err != nil {
			if errors.Is(err, entity.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", entity.ErrProductNotFound, l.ProductID)
			}
			return nil, err
		}
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		cart.Merge(lines)
	case errors.Is(err, entity.ErrCartNotFound):
		cart = entity.NewCart(userID)
		cart.Merge(lines)
	default:
		return nil, err
	}

	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int64) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.SetQuantity(productID, quantity) {
		return nil, entity.ErrCartLineNotFound
	}
	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine drops every line for the product, whatever its color or size.
func (s *CartService) RemoveLine(ctx context.Context, userID, productID string) (*entity.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.RemoveProduct(productID)
	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	cart.Clear()
	return s.carts.Save(ctx, cart)
}

// CartViewLine is a cart line enriched with its live product snapshot.
type CartViewLine struct {
	entity.CartLine
	Product  *entity.Product `json:"product"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	ID         string          `json:"cartId"`
	UserID     string          `json:"userId"`
	Lines      []CartViewLine  `json:"products"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// View returns the cart with populated product detail and line subtotals.
// Lines whose product no longer resolves are dropped from the view only;
// they stay in storage until removed explicitly.
func (s *CartService) View(ctx context.Context, userID string) (*CartView, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	prods, err := s.fetchProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	view := &CartView{ID: cart.ID, UserID: cart.UserID, TotalPrice: cart.TotalPrice}
	for _, l := range cart.Lines {
		p, ok := prods[l.ProductID]
		if !ok {
			continue
		}
		view.Lines = append(view.Lines, CartViewLine{
			CartLine: l,
			Product:  p,
			Subtotal: p.FinalPrice().Mul(decimal.NewFromInt(l.Quantity)),
		})
	}
	return view, nil
}

func (s *CartService) fetchProducts(ctx context.Context, cart *entity.Cart) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(cart.Lines))
	seen := make(map[string]struct{}, len(cart.Lines))
	for _, l := range cart.Lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	if len(ids) == 0 {
		return map[string]*entity.Product{}, nil
	}
	return s.products.GetByIDs(ctx, ids)
}

// recomputeTotal sums live finalPrice * quantity. A line whose product has
// vanished contributes nothing rather than failing the whole operation.
func (s *CartService) recomputeTotal(ctx context.Context, cart *entity.Cart) error {
	prods, err := s.fetchProducts(ctx, cart)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, l := range cart.Lines {
		p, ok := prods[l.ProductID]
		if !ok {
			continue
		}
		total = total.Add(p.FinalPrice().Mul(decimal.NewFromInt(l.Quantity)))
	}
	cart.TotalPrice = total
	return nil
}
