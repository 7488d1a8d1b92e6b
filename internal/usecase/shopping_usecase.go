package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

// ShoppingUsecase exposes cart, checkout and favorites operations.
type ShoppingUsecase interface {
	AddToCart(ctx context.Context, id Identity, productID int64) (*CartLine, error)
	RemoveFromCart(ctx context.Context, id Identity, cartID int64) (*CartLine, error)
	ViewCart(ctx context.Context, id Identity) (*CartView, error)
	// Checkout returns the pruning notices together with ErrEmptyCart when
	// nothing is left to buy.
	Checkout(ctx context.Context, id Identity) (*CheckoutSummary, error)

	// AddFavorite reports already=true when the product was favorited before.
	AddFavorite(ctx context.Context, id Identity, productID int64) (line *FavoriteLine, already bool, err error)
	RemoveFavorite(ctx context.Context, id Identity, favoriteID int64) (*FavoriteLine, error)
	ViewFavorites(ctx context.Context, id Identity) (*FavoritesView, error)
}

// CartLine is a cart row with its product. Product is nil when the product no
// longer exists.
type CartLine struct {
	Item    *entity.CartItem
	Product *entity.Product
}

func (l CartLine) ProductName() string {
	return productName(l.Product)
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Item.Quantity)))
}

type CartView struct {
	Lines   []CartLine
	Total   decimal.Decimal
	Notices []Notice
}

// SellerGroup lists the items bought from one seller.
type SellerGroup struct {
	Seller   *entity.User
	Lines    []CartLine
	Subtotal decimal.Decimal
}

type CheckoutSummary struct {
	Groups  []SellerGroup
	Total   decimal.Decimal
	Notices []Notice
}

type FavoriteLine struct {
	Favorite *entity.Favorite
	Product  *entity.Product
}

func (l FavoriteLine) ProductName() string {
	return productName(l.Product)
}

type FavoritesView struct {
	Lines   []FavoriteLine
	Notices []Notice
}
