package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

const identityKey = "identity"

// ResolveIdentity loads the user behind the session token. Tokens whose user
// no longer exists resolve to the anonymous identity.
func ResolveIdentity(auth usecase.AuthUsecase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := usecase.Anonymous
		if id, err := UserIDFromCtx(c); err == nil {
			identity = auth.ResolveSession(c.UserContext(), id)
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func IdentityFromCtx(c *fiber.Ctx) usecase.Identity {
	if identity, ok := c.Locals(identityKey).(usecase.Identity); ok {
		return identity
	}
	return usecase.Anonymous
}
