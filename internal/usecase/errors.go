package usecase

import (
	"errors"

	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrLoginRequired      = errors.New("login required")
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrOwnProduct         = errors.New("you cannot add your own product")
	ErrProductUnavailable = errors.New("this product is not available")
	ErrEmptyCart          = errors.New("your cart is empty, nothing to checkout")
	ErrAdminAccount       = errors.New("cannot delete admin users")
)

// ValidationError reports bad user input. The caller may re-show its form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
