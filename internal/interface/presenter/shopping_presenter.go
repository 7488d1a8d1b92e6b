package presenter

import (
	"github.com/shopspring/decimal"

	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

type ShoppingPresenter struct {
	products *ProductPresenter
	users    *UserPresenter
}

func NewShoppingPresenter(products *ProductPresenter, users *UserPresenter) *ShoppingPresenter {
	return &ShoppingPresenter{products: products, users: users}
}

type CartLineResponse struct {
	ID       int64            `json:"id"`
	Quantity int              `json:"quantity"`
	Subtotal decimal.Decimal  `json:"subtotal"`
	Product  *ProductResponse `json:"product"`
}

type CartResponse struct {
	Items   []*CartLineResponse `json:"items"`
	Total   decimal.Decimal     `json:"total"`
	Notices []usecase.Notice    `json:"notices"`
}

type SellerGroupResponse struct {
	Seller   *ContactResponse    `json:"seller"`
	Items    []*CartLineResponse `json:"items"`
	Subtotal decimal.Decimal     `json:"subtotal"`
}

type CheckoutResponse struct {
	Sellers []*SellerGroupResponse `json:"sellers"`
	Total   decimal.Decimal        `json:"total"`
	Notices []usecase.Notice       `json:"notices"`
}

type FavoriteResponse struct {
	ID      int64            `json:"id"`
	Product *ProductResponse `json:"product"`
}

type FavoritesResponse struct {
	Items   []*FavoriteResponse `json:"items"`
	Notices []usecase.Notice    `json:"notices"`
}

func notices(n []usecase.Notice) []usecase.Notice {
	if n == nil {
		return []usecase.Notice{}
	}
	return n
}

func (p *ShoppingPresenter) ToLine(l usecase.CartLine) *CartLineResponse {
	return &CartLineResponse{
		ID:       l.Item.ID,
		Quantity: l.Item.Quantity,
		Subtotal: l.Subtotal(),
		Product:  p.products.ToResponse(l.Product, nil),
	}
}

func (p *ShoppingPresenter) lines(in []usecase.CartLine) []*CartLineResponse {
	out := make([]*CartLineResponse, 0, len(in))
	for _, l := range in {
		out = append(out, p.ToLine(l))
	}
	return out
}

func (p *ShoppingPresenter) ToCart(v *usecase.CartView) *CartResponse {
	return &CartResponse{Items: p.lines(v.Lines), Total: v.Total, Notices: notices(v.Notices)}
}

func (p *ShoppingPresenter) ToCheckout(s *usecase.CheckoutSummary) *CheckoutResponse {
	out := &CheckoutResponse{Sellers: make([]*SellerGroupResponse, 0, len(s.Groups)), Total: s.Total, Notices: notices(s.Notices)}
	for _, g := range s.Groups {
		out.Sellers = append(out.Sellers, &SellerGroupResponse{
			Seller:   p.users.ToContact(g.Seller),
			Items:    p.lines(g.Lines),
			Subtotal: g.Subtotal,
		})
	}
	return out
}

func (p *ShoppingPresenter) ToFavorite(l usecase.FavoriteLine) *FavoriteResponse {
	return &FavoriteResponse{ID: l.Favorite.ID, Product: p.products.ToResponse(l.Product, nil)}
}

func (p *ShoppingPresenter) ToFavorites(v *usecase.FavoritesView) *FavoritesResponse {
	out := &FavoritesResponse{Items: make([]*FavoriteResponse, 0, len(v.Lines)), Notices: notices(v.Notices)}
	for _, l := range v.Lines {
		out.Items = append(out.Items, p.ToFavorite(l))
	}
	return out
}
