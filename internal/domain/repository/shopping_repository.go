package repository

import (
	"context"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

// CartRepository defines persistence behavior for cart rows.
type CartRepository interface {
	Create(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	GetByID(ctx context.Context, id int64) (*entity.CartItem, error)
	// Find returns the first row for the (user, product) pair.
	Find(ctx context.Context, userID, productID int64) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.CartItem, error)
	Update(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	Delete(ctx context.Context, ids ...int64) error
	DeleteByProduct(ctx context.Context, productID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// FavoriteRepository defines persistence behavior for favorites.
type FavoriteRepository interface {
	Create(ctx context.Context, fav *entity.Favorite) (*entity.Favorite, error)
	GetByID(ctx context.Context, id int64) (*entity.Favorite, error)
	Find(ctx context.Context, userID, productID int64) (*entity.Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Favorite, error)
	Delete(ctx context.Context, ids ...int64) error
	DeleteByProduct(ctx context.Context, productID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// CommentRepository defines persistence behavior for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) (*entity.Comment, error)
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	// ListByProduct returns comments oldest first.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Comment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByProduct(ctx context.Context, productID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}
