package presenter

import (
	"strings"
	"time"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

// AssetURL maps a stored relative path to the URL a client can fetch.
type AssetURL func(path string) string

// LocalAssets serves every relative path from the application root.
func LocalAssets(path string) string {
	return "/" + strings.TrimPrefix(path, "/")
}

func (a AssetURL) resolve(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if a == nil {
		return LocalAssets(path)
	}
	return a(path)
}

const timeLayout = time.RFC3339

// UserPresenter shapes domain entities for delivery layer responses.
type UserPresenter struct {
	assets AssetURL
}

func NewUserPresenter(assets AssetURL) *UserPresenter {
	return &UserPresenter{assets: assets}
}

type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	Phone       string `json:"phone,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
	CreatedAt   string `json:"created_at"`
}

// ContactResponse is the part of a user shown to buyers.
type ContactResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

func (p *UserPresenter) ToResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Username:    user.Username,
		Avatar:      p.assets.resolve(user.Avatar),
		Phone:       user.Phone,
		IsAdmin:     user.IsAdmin,
		CreatedAt:   user.CreatedAt.Format(timeLayout),
	}
}

func (p *UserPresenter) ToList(users []*entity.User) []*UserResponse {
	result := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, p.ToResponse(user))
	}
	return result
}

func (p *UserPresenter) ToContact(user *entity.User) *ContactResponse {
	if user == nil {
		return nil
	}
	return &ContactResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Phone:       user.Phone,
		Avatar:      p.assets.resolve(user.Avatar),
	}
}
