package repository

import (
	"context"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

// UserRepository defines persistence behavior for the User entity.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}
