package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// AuthUsecase resolves sessions and signs users in.
type AuthUsecase interface {
	ResolveSession(ctx context.Context, userID int64) Identity
	AuthenticateAdmin(ctx context.Context, username, password string) (*entity.User, error)
	AuthenticateFederated(ctx context.Context, profile FederatedProfile) (*entity.User, error)
}

// AdminCredentials is the static admin login. Password may be a bcrypt hash.
type AdminCredentials struct {
	Username string
	Password string
}

type AuthService struct {
	store repository.Store
	admin AdminCredentials
	log   *zap.Logger
}

var _ AuthUsecase = (*AuthService)(nil)

func NewAuthService(store repository.Store, admin AdminCredentials, log *zap.Logger) *AuthService {
	return &AuthService{store: store, admin: admin, log: log}
}

func (s *AuthService) ResolveSession(ctx context.Context, userID int64) Identity {
	if userID <= 0 {
		return Anonymous
	}
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("failed to resolve session", zap.Int64("user_id", userID), zap.Error(err))
		}
		return Anonymous
	}
	return Identity{User: user}
}

func (s *AuthService) passwordMatches(password string) bool {
	if looksLikeBcrypt(s.admin.Password) {
		return bcrypt.CompareHashAndPassword([]byte(s.admin.Password), []byte(password)) == nil
	}
	return password == s.admin.Password
}

func (s *AuthService) AuthenticateAdmin(ctx context.Context, username, password string) (*entity.User, error) {
	if s.admin.Username == "" || username != s.admin.Username || !s.passwordMatches(password) {
		return nil, ErrInvalidCredentials
	}

	var admin *entity.User
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().GetByEmail(ctx, entity.AdminEmail)
		if err == nil {
			admin = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		admin, err = tx.Users().Create(ctx, &entity.User{
			ExternalID:  entity.AdminExternalID,
			Email:       entity.AdminEmail,
			DisplayName: entity.AdminName,
			Username:    s.admin.Username,
			Avatar:      entity.AdminAvatar,
			Phone:       entity.AdminPhone,
			IsAdmin:     true,
			CreatedAt:   time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AuthService) AuthenticateFederated(ctx context.Context, profile FederatedProfile) (*entity.User, error) {
	if profile.ExternalID == "" || profile.Email == "" {
		return nil, invalid("profile", "The identity provider did not return an account id and email.")
	}

	var user *entity.User
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().GetByExternalID(ctx, profile.ExternalID)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		username, err := uniqueUsername(ctx, tx.Users(), profile.Email)
		if err != nil {
			return err
		}
		avatar := profile.AvatarURL
		if avatar == "" {
			avatar = entity.DefaultAvatar
		}
		user, err = tx.Users().Create(ctx, &entity.User{
			ExternalID:  profile.ExternalID,
			Email:       profile.Email,
			DisplayName: profile.DisplayName,
			Username:    username,
			Avatar:      avatar,
			CreatedAt:   time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// uniqueUsername derives a username from the email local part, appending
// 1, 2, ... until it is free.
func uniqueUsername(ctx context.Context, users repository.UserRepository, email string) (string, error) {
	base, _, _ := strings.Cut(email, "@")
	candidate := base
	for n := 1; ; n++ {
		_, err := users.GetByUsername(ctx, candidate)
		if errors.Is(err, repository.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = base + strconv.Itoa(n)
	}
}

func looksLikeBcrypt(value string) bool {
	return len(value) > 4 && value[0:2] == "$2"
}
