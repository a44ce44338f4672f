package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basit438/popacart-backend/internal/entity"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// catalog backs a ProductRepoMock with a fixed set of products.
func catalog(prods ...*entity.Product) *ProductRepoMock {
	byID := make(map[string]*entity.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}
	return &ProductRepoMock{
		GetByIDFunc: func(_ context.Context, id string) (*entity.Product, error) {
			p, ok := byID[id]
			if !ok {
				return nil, entity.ErrProductNotFound
			}
			return p, nil
		},
		GetByIDsFunc: func(_ context.Context, ids []string) (map[string]*entity.Product, error) {
			out := make(map[string]*entity.Product, len(ids))
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					out[id] = p
				}
			}
			return out, nil
		},
	}
}

// memCarts backs a CartRepoMock with a single stored cart.
type memCarts struct {
	cart  *entity.Cart
	saved int
}

func (m *memCarts) repo() *CartRepoMock {
	return &CartRepoMock{
		GetByUserIDFunc: func(_ context.Context, userID string) (*entity.Cart, error) {
			if m.cart == nil || m.cart.UserID != userID {
				return nil, entity.ErrCartNotFound
			}
			return m.cart, nil
		},
		SaveFunc: func(_ context.Context, c *entity.Cart) error {
			m.cart = c
			m.saved++
			return nil
		},
	}
}

func TestCartServiceAddLinesCreatesCart(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Name: "Shirt", Price: price("120"), Discount: price("20")}
	store := &memCarts{}
	svc := NewCartService(catalog(shirt), store.repo())

	cart, err := svc.AddLines(context.Background(), "u1", []entity.CartLine{
		{ProductID: "p1", Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "u1", cart.UserID)
	assert.Equal(t, int64(2), cart.Lines[0].Quantity)
	// 2 * (120 - 20)
	assert.True(t, cart.TotalPrice.Equal(price("200")), "got %s", cart.TotalPrice)
	assert.Equal(t, 1, store.saved)
}

func TestCartServiceAddLinesMergesSameVariant(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("50"), Discount: price("0")}
	store := &memCarts{}
	svc := NewCartService(catalog(shirt), store.repo())

	red := &entity.Color{Name: "Red", Code: "#f00"}
	_, err := svc.AddLines(context.Background(), "u1", []entity.CartLine{
		{ProductID: "p1", Quantity: 1, SelectedColor: red, SelectedSize: "M"},
	})
	require.NoError(t, err)

	cart, err := svc.AddLines(context.Background(), "u1", []entity.CartLine{
		{ProductID: "p1", Quantity: 3, SelectedColor: &entity.Color{Name: "Red", Code: "#f00"}, SelectedSize: "M"},
		{ProductID: "p1", Quantity: 1, SelectedColor: red, SelectedSize: "L"},
	})
	require.NoError(t, err)

	require.Len(t, cart.Lines, 2, "same variant merges, new size appends")
	assert.Equal(t, int64(4), cart.Lines[0].Quantity)
	assert.Equal(t, "L", cart.Lines[1].SelectedSize)
	assert.True(t, cart.TotalPrice.Equal(price("250")))
}

func TestCartServiceAddLinesRejectsWholeBatch(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("10"), Discount: price("0")}
	store := &memCarts{}
	svc := NewCartService(catalog(shirt), store.repo())

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddLines(context.Background(), "u1", []entity.CartLine{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "ghost", Quantity: 1},
		})
		assert.ErrorIs(t, err, entity.ErrProductNotFound)
		assert.Zero(t, store.saved, "nothing persists when any line is bad")
	})

	t.Run("bad quantity", func(t *testing.T) {
		_, err := svc.AddLines(context.Background(), "u1", []entity.CartLine{
			{ProductID: "p1", Quantity: 0},
		})
		assert.ErrorIs(t, err, entity.ErrInvalidQuantity)
		assert.Zero(t, store.saved)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := svc.AddLines(context.Background(), "u1", nil)
		assert.ErrorIs(t, err, entity.ErrInvalidQuantity)
	})
}

func TestCartServiceAddLinesPropagatesLookupFailures(t *testing.T) {
	dbDown := errors.New("connection refused")
	products := &ProductRepoMock{
		GetByIDFunc: func(context.Context, string) (*entity.Product, error) {
			return nil, dbDown
		},
	}
	store := &memCarts{}
	svc := NewCartService(products, store.repo())

	_, err := svc.AddLines(context.Background(), "u1", []entity.CartLine{
		{ProductID: "p1", Quantity: 1},
	})
	assert.ErrorIs(t, err, dbDown, "a repo failure is not a missing product")
	assert.NotErrorIs(t, err, entity.ErrProductNotFound)
	assert.Zero(t, store.saved)
}

func TestCartServiceUpdateQuantity(t *testing.T) {
	shirt := &entity.Product{ID: "p1", Price: price("30"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines:  []entity.CartLine{{ProductID: "p1", Quantity: 1}},
	}}
	svc := NewCartService(catalog(shirt), store.repo())

	cart, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cart.Lines[0].Quantity)
	assert.True(t, cart.TotalPrice.Equal(price("150")))

	_, err = svc.UpdateQuantity(context.Background(), "u1", "p1", 0)
	assert.ErrorIs(t, err, entity.ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(context.Background(), "u1", "absent", 2)
	assert.ErrorIs(t, err, entity.ErrCartLineNotFound)
}

func TestCartServiceRemoveLineRecomputesTotal(t *testing.T) {
	a := &entity.Product{ID: "a", Price: price("10"), Discount: price("0")}
	b := &entity.Product{ID: "b", Price: price("7"), Discount: price("0")}
	store := &memCarts{cart: &entity.Cart{
		UserID: "u1",
		Lines: []entity.CartLine{
			{ProductID: "a", Quantity: 2},
			{ProductID: "b", Quantity: 1},
		},
	}}
	svc := NewCartService(catalog(a, b), store.repo())

	cart, err := svc.RemoveLine(context.Background(), "u1", "a")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "b", cart.Lines[0].ProductID)
	assert.True(t, cart.TotalPrice.Equal(price("7")))
}

func TestCartServiceViewDropsUnresolvableLines(t *testing.T) {
	live := &entity.Product{ID: "live", Price: price("40"), Discount: price("5")}
	store := &memCarts{cart: &entity.Cart{
		ID:     "c1",
		UserID: "u1",
		Lines: []entity.CartLine{
			{ProductID: "live", Quantity: 2},
			{ProductID: "deleted", Quantity: 1},
		},
		TotalPrice: price("70"),
	}}
	svc := NewCartService(catalog(live), store.repo())

	view, err := svc.View(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1, "stale line hidden from view")
	assert.Equal(t, "live", view.Lines[0].ProductID)
	assert.True(t, view.Lines[0].Subtotal.Equal(price("70")))

	// Storage untouched: View must not save.
	assert.Zero(t, store.saved)
	assert.Len(t, store.cart.Lines, 2)
}

func TestCartServiceClear(t *testing.T) {
	store := &memCarts{cart: &entity.Cart{
		UserID:     "u1",
		Lines:      []entity.CartLine{{ProductID: "a", Quantity: 1}},
		TotalPrice: price("10"),
	}}
	svc := NewCartService(catalog(), store.repo())

	require.NoError(t, svc.Clear(context.Background(), "u1"))
	assert.Empty(t, store.cart.Lines)
	assert.True(t, store.cart.TotalPrice.IsZero())

	err := svc.Clear(context.Background(), "nobody")
	assert.ErrorIs(t, err, entity.ErrCartNotFound)
}
