package usecase

import "github.com/wichananm65/buytouch-backend/internal/domain/entity"

// Identity is the resolved caller of a request. A nil User is anonymous.
type Identity struct {
	User *entity.User
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Identity{}

func (i Identity) IsAuthenticated() bool {
	return i.User != nil
}

func (i Identity) IsAdmin() bool {
	return i.User != nil && i.User.IsAdmin
}

// UserID returns the caller's id, or 0 when anonymous.
func (i Identity) UserID() int64 {
	if i.User == nil {
		return 0
	}
	return i.User.ID
}

// Role is a predicate over an authenticated identity.
type Role func(Identity) bool

func Authenticated() Role {
	return func(i Identity) bool { return true }
}

func Admin() Role {
	return func(i Identity) bool { return i.IsAdmin() }
}

// Owner matches when the caller's id equals the entity's owning user id.
func Owner(userID int64) Role {
	return func(i Identity) bool { return i.User.ID == userID }
}

// Require passes when the identity is authenticated and satisfies any of the
// roles. Anonymous callers get ErrLoginRequired; everyone else ErrForbidden.
func Require(i Identity, roles ...Role) error {
	if !i.IsAuthenticated() {
		return ErrLoginRequired
	}
	if len(roles) == 0 {
		return nil
	}
	for _, role := range roles {
		if role(i) {
			return nil
		}
	}
	return ErrForbidden
}
