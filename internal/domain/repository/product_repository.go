package repository

import (
	"context"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

// ProductFilter narrows product listings. Zero values disable a criterion.
type ProductFilter struct {
	Status   entity.Status
	SellerID int64
	Category string
	// Query matches name, brand or description, case-insensitive substring.
	Query string
}

// ProductRepository defines persistence behavior for products.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) (*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// List returns matching products, newest first.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
	// Categories returns the distinct non-empty categories of products in the given status.
	Categories(ctx context.Context, status entity.Status) ([]string, error)
}

// ImageRepository defines persistence behavior for product images.
type ImageRepository interface {
	Create(ctx context.Context, img *entity.ProductImage) (*entity.ProductImage, error)
	// ListByProduct returns a product's images in insertion order.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductImage, error)
	// ListByProducts returns the images of several products, ordered by id.
	ListByProducts(ctx context.Context, productIDs []int64) ([]*entity.ProductImage, error)
	Delete(ctx context.Context, id int64) error
}
