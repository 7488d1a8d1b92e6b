package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store groups every repository behind one unit of work.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Images() ImageRepository
	Carts() CartRepository
	Favorites() FavoriteRepository
	Comments() CommentRepository

	// InTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling InTx on a Store that is already transactional joins it.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
