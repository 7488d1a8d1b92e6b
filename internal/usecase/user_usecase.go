package usecase

import (
	"context"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

// UserUsecase exposes account settings and admin account management.
type UserUsecase interface {
	Profile(ctx context.Context, id Identity) (*entity.User, error)
	UpdateProfile(ctx context.Context, id Identity, input UpdateProfileInput) (*entity.User, error)
	AdminDashboard(ctx context.Context, id Identity) (*Dashboard, error)
	DeleteUser(ctx context.Context, id Identity, userID int64) (*entity.User, error)
}

// UpdateProfileInput carries the profile settings form. Avatar is optional.
type UpdateProfileInput struct {
	Username string
	Phone    string
	Avatar   *Upload
}

type Dashboard struct {
	Pending  []*ProductView
	Products []*ProductView
	Users    []*entity.User
}
