package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// UserService implements UserUsecase with repository dependency.
type UserService struct {
	store  repository.Store
	images ImageStore
	log    *zap.Logger
}

var _ UserUsecase = (*UserService)(nil)

func NewUserService(store repository.Store, images ImageStore, log *zap.Logger) *UserService {
	return &UserService{store: store, images: images, log: log}
}

// localAvatar reports whether the avatar is an uploaded file we own.
func localAvatar(path string) bool {
	return path != "" &&
		!strings.HasSuffix(path, "default_avatar.png") &&
		!strings.HasPrefix(path, "http")
}

func (s *UserService) Profile(ctx context.Context, id Identity) (*entity.User, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	return s.store.Users().GetByID(ctx, id.UserID())
}

func (s *UserService) UpdateProfile(ctx context.Context, id Identity, input UpdateProfileInput) (*entity.User, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, invalid("username", "Username cannot be empty.")
	}

	var (
		updated  *entity.User
		stored   string
		replaced string
	)
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, id.UserID())
		if err != nil {
			return err
		}
		taken, err := tx.Users().GetByUsername(ctx, username)
		if err == nil && taken.ID != user.ID {
			return invalid("username", "Username already taken. Please choose another one.")
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		user.Username = username
		user.Phone = strings.TrimSpace(input.Phone)
		if input.Avatar != nil && input.Avatar.Filename != "" {
			path, err := s.images.Store(ctx, *input.Avatar)
			if err != nil {
				s.log.Warn("skipping profile picture", zap.String("filename", input.Avatar.Filename), zap.Error(err))
			} else {
				stored = path
				if localAvatar(user.Avatar) {
					replaced = user.Avatar
				}
				user.Avatar = path
			}
		}

		updated, err = tx.Users().Update(ctx, user)
		if errors.Is(err, repository.ErrDuplicate) {
			return invalid("username", "Username already taken. Please choose another one.")
		}
		return err
	})
	if err != nil {
		if stored != "" {
			discardFiles(ctx, s.images, s.log, []string{stored})
		}
		return nil, err
	}
	if replaced != "" {
		discardFiles(ctx, s.images, s.log, []string{replaced})
	}
	return updated, nil
}

func (s *UserService) AdminDashboard(ctx context.Context, id Identity) (*Dashboard, error) {
	if err := Require(id, Admin()); err != nil {
		return nil, err
	}
	all, err := s.store.Products().List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	products, err := withImages(ctx, s.store, all)
	if err != nil {
		return nil, err
	}
	pending := make([]*ProductView, 0)
	for _, v := range products {
		if v.Product.Status == entity.StatusPending {
			pending = append(pending, v)
		}
	}
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Pending: pending, Products: products, Users: users}, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id Identity, userID int64) (*entity.User, error) {
	if err := Require(id, Admin()); err != nil {
		return nil, err
	}

	var (
		user  *entity.User
		paths []string
	)
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsAdmin {
			return ErrAdminAccount
		}

		products, err := tx.Products().List(ctx, repository.ProductFilter{SellerID: user.ID})
		if err != nil {
			return err
		}
		for _, p := range products {
			removed, err := teardownProduct(ctx, tx, p.ID)
			if err != nil {
				return err
			}
			paths = append(paths, removed...)
		}

		if err := tx.Carts().DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Favorites().DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Comments().DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	if localAvatar(user.Avatar) {
		paths = append(paths, user.Avatar)
	}
	discardFiles(ctx, s.images, s.log, paths)
	return user, nil
}
