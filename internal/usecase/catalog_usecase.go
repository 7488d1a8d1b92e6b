package usecase

import (
	"context"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

// Moderation actions accepted by CatalogUsecase.Moderate.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionDelete = "delete"
)

// CatalogUsecase exposes listing, moderation and browsing of products.
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, id Identity, in ProductInput, files []Upload) (*ProductView, error)
	// EditProduct returns the stored product alongside a ValidationError when
	// the edit is rejected.
	EditProduct(ctx context.Context, id Identity, productID int64, in EditProductInput, files []Upload) (*ProductView, error)
	DeleteProduct(ctx context.Context, id Identity, productID int64) (*entity.Product, error)
	Moderate(ctx context.Context, id Identity, productID int64, action string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Browse(ctx context.Context, query, category string) (*BrowseResult, error)
	ProductDetail(ctx context.Context, id Identity, productID int64) (*ProductDetail, error)
	ListMine(ctx context.Context, id Identity) ([]*ProductView, error)
}

// ProductInput carries the submitted product form. Price stays raw so it can
// be echoed back when it does not parse.
type ProductInput struct {
	Name        string
	Category    string
	Brand       string
	Description string
	Price       string
}

// EditProductInput carries an edit form. Status is honored for admins only
// and ignored when empty.
type EditProductInput struct {
	ProductInput
	KeepImageIDs []int64
	Status       string
}

type ProductView struct {
	Product *entity.Product
	Images  []*entity.ProductImage
}

type CommentView struct {
	Comment *entity.Comment
	Author  *entity.User
}

type ProductDetail struct {
	ProductView
	Seller   *entity.User
	Comments []CommentView
}

type BrowseResult struct {
	Products   []*ProductView
	Categories []string
	Query      string
	Category   string
}
