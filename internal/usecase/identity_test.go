package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

func TestRequire(t *testing.T) {
	seller := Identity{User: &entity.User{ID: 1}}
	other := Identity{User: &entity.User{ID: 2}}
	admin := Identity{User: &entity.User{ID: 3, IsAdmin: true}}

	tests := []struct {
		name  string
		id    Identity
		roles []Role
		want  error
	}{
		{"anonymous needs login", Anonymous, []Role{Authenticated()}, ErrLoginRequired},
		{"anonymous never reaches role checks", Anonymous, []Role{Admin()}, ErrLoginRequired},
		{"authenticated", other, []Role{Authenticated()}, nil},
		{"no roles means authenticated", other, nil, nil},
		{"owner", seller, []Role{Owner(1), Admin()}, nil},
		{"admin instead of owner", admin, []Role{Owner(1), Admin()}, nil},
		{"neither owner nor admin", other, []Role{Owner(1), Admin()}, ErrForbidden},
		{"admin only", seller, []Role{Admin()}, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Require(tt.id, tt.roles...))
		})
	}
}
