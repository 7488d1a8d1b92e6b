package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// ShoppingService implements ShoppingUsecase. Stale cart and favorite rows
// are pruned when read, not when products change.
type ShoppingService struct {
	store repository.Store
	log   *zap.Logger
}

var _ ShoppingUsecase = (*ShoppingService)(nil)

func NewShoppingService(store repository.Store, log *zap.Logger) *ShoppingService {
	return &ShoppingService{store: store, log: log}
}

// purchasable loads a product the caller may put in their cart or favorites.
func purchasable(ctx context.Context, tx repository.Store, id Identity, productID int64) (*entity.Product, error) {
	p, err := tx.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.SellerID == id.UserID() {
		return nil, ErrOwnProduct
	}
	if !p.Visible() {
		return nil, ErrProductUnavailable
	}
	return p, nil
}

// liveProduct returns the product when it still exists and is accepted.
func liveProduct(ctx context.Context, tx repository.Store, productID int64) (*entity.Product, bool, error) {
	p, err := tx.Products().GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, p.Visible(), nil
}

func productName(p *entity.Product) string {
	if p == nil {
		return "Unknown Product"
	}
	return p.Name
}

func (s *ShoppingService) AddToCart(ctx context.Context, id Identity, productID int64) (*CartLine, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	var line *CartLine
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		p, err := purchasable(ctx, tx, id, productID)
		if err != nil {
			return err
		}
		item, err := tx.Carts().Find(ctx, id.UserID(), productID)
		switch {
		case err == nil:
			item.Quantity++
			item, err = tx.Carts().Update(ctx, item)
		case errors.Is(err, repository.ErrNotFound):
			item, err = tx.Carts().Create(ctx, &entity.CartItem{UserID: id.UserID(), ProductID: productID, Quantity: 1})
		}
		if err != nil {
			return err
		}
		line = &CartLine{Item: item, Product: p}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *ShoppingService) RemoveFromCart(ctx context.Context, id Identity, cartID int64) (*CartLine, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	var line *CartLine
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		item, err := tx.Carts().GetByID(ctx, cartID)
		if err != nil {
			return err
		}
		if err := Require(id, Owner(item.UserID)); err != nil {
			return err
		}
		p, _, err := liveProduct(ctx, tx, item.ProductID)
		if err != nil {
			return err
		}
		if err := tx.Carts().Delete(ctx, item.ID); err != nil {
			return err
		}
		line = &CartLine{Item: item, Product: p}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// pruneCart deletes rows whose product is gone or no longer accepted and
// returns the surviving lines.
func pruneCart(ctx context.Context, tx repository.Store, userID int64, reason string) ([]CartLine, []Notice, error) {
	items, err := tx.Carts().ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	lines := make([]CartLine, 0, len(items))
	notices := make([]Notice, 0)
	stale := make([]int64, 0)
	for _, item := range items {
		p, ok, err := liveProduct(ctx, tx, item.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			stale = append(stale, item.ID)
			notices = append(notices, Notice{
				Level:   NoticeWarning,
				Message: fmt.Sprintf("'%s' was unavailable or unaccepted and has been removed from your cart%s.", productName(p), reason),
			})
			continue
		}
		lines = append(lines, CartLine{Item: item, Product: p})
	}
	if err := tx.Carts().Delete(ctx, stale...); err != nil {
		return nil, nil, err
	}
	return lines, notices, nil
}

func total(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func (s *ShoppingService) ViewCart(ctx context.Context, id Identity) (*CartView, error) {
	if !id.IsAuthenticated() {
		return &CartView{
			Lines:   []CartLine{},
			Total:   decimal.Zero,
			Notices: []Notice{{Level: NoticeInfo, Message: "You need to log in to manage your persistent cart."}},
		}, nil
	}

	var view *CartView
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		lines, notices, err := pruneCart(ctx, tx, id.UserID(), "")
		if err != nil {
			return err
		}
		if len(notices) > 0 {
			s.log.Debug("pruned stale cart rows", zap.Int64("user_id", id.UserID()), zap.Int("removed", len(notices)))
		}
		view = &CartView{Lines: lines, Total: total(lines), Notices: notices}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ShoppingService) Checkout(ctx context.Context, id Identity) (*CheckoutSummary, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}

	var summary *CheckoutSummary
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		lines, notices, err := pruneCart(ctx, tx, id.UserID(), " for checkout")
		if err != nil {
			return err
		}
		summary = &CheckoutSummary{Groups: []SellerGroup{}, Total: total(lines), Notices: notices}

		index := make(map[int64]int)
		for _, line := range lines {
			sellerID := line.Product.SellerID
			i, ok := index[sellerID]
			if !ok {
				seller, err := tx.Users().GetByID(ctx, sellerID)
				if err != nil && !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				summary.Groups = append(summary.Groups, SellerGroup{Seller: seller, Subtotal: decimal.Zero})
				i = len(summary.Groups) - 1
				index[sellerID] = i
			}
			g := &summary.Groups[i]
			g.Lines = append(g.Lines, line)
			g.Subtotal = g.Subtotal.Add(line.Subtotal())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(summary.Groups) == 0 {
		return summary, ErrEmptyCart
	}
	return summary, nil
}

func (s *ShoppingService) AddFavorite(ctx context.Context, id Identity, productID int64) (*FavoriteLine, bool, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, false, err
	}
	var (
		line    *FavoriteLine
		already bool
	)
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		p, err := purchasable(ctx, tx, id, productID)
		if err != nil {
			return err
		}
		fav, err := tx.Favorites().Find(ctx, id.UserID(), productID)
		switch {
		case err == nil:
			already = true
		case errors.Is(err, repository.ErrNotFound):
			fav, err = tx.Favorites().Create(ctx, &entity.Favorite{UserID: id.UserID(), ProductID: productID})
			if err != nil {
				return err
			}
		default:
			return err
		}
		line = &FavoriteLine{Favorite: fav, Product: p}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return line, already, nil
}

func (s *ShoppingService) RemoveFavorite(ctx context.Context, id Identity, favoriteID int64) (*FavoriteLine, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	var line *FavoriteLine
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		fav, err := tx.Favorites().GetByID(ctx, favoriteID)
		if err != nil {
			return err
		}
		if err := Require(id, Owner(fav.UserID)); err != nil {
			return err
		}
		p, _, err := liveProduct(ctx, tx, fav.ProductID)
		if err != nil {
			return err
		}
		if err := tx.Favorites().Delete(ctx, fav.ID); err != nil {
			return err
		}
		line = &FavoriteLine{Favorite: fav, Product: p}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *ShoppingService) ViewFavorites(ctx context.Context, id Identity) (*FavoritesView, error) {
	if !id.IsAuthenticated() {
		return &FavoritesView{
			Lines:   []FavoriteLine{},
			Notices: []Notice{{Level: NoticeInfo, Message: "You need to log in to manage your favorites."}},
		}, nil
	}

	var view *FavoritesView
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		favs, err := tx.Favorites().ListByUser(ctx, id.UserID())
		if err != nil {
			return err
		}
		view = &FavoritesView{Lines: make([]FavoriteLine, 0, len(favs)), Notices: []Notice{}}
		stale := make([]int64, 0)
		for _, fav := range favs {
			p, ok, err := liveProduct(ctx, tx, fav.ProductID)
			if err != nil {
				return err
			}
			if !ok {
				stale = append(stale, fav.ID)
				view.Notices = append(view.Notices, Notice{
					Level:   NoticeWarning,
					Message: fmt.Sprintf("'%s' was unavailable or unaccepted and has been removed from your favorites.", productName(p)),
				})
				continue
			}
			view.Lines = append(view.Lines, FavoriteLine{Favorite: fav, Product: p})
		}
		if len(stale) > 0 {
			s.log.Debug("pruned stale favorites", zap.Int64("user_id", id.UserID()), zap.Int("removed", len(stale)))
		}
		return tx.Favorites().Delete(ctx, stale...)
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
