package usecase

import (
	"context"

	"github.com/basit438/popacart-backend/internal/entity"
)

type WishlistService struct {
	wishlist WishlistRepo
	products ProductRepo
}

func NewWishlistService(wishlist WishlistRepo, products ProductRepo) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// Toggle adds the product to the wishlist, or removes it when already saved.
// Returns true when the product ended up in the wishlist.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return false, err
	}
	has, err := s.wishlist.Has(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if has {
		return false, s.wishlist.Remove(ctx, userID, productID)
	}
	return true, s.wishlist.Add(ctx, userID, productID)
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]entity.Product, error) {
	return s.wishlist.List(ctx, userID)
}
