package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "session"

	userKey    = "user"
	sessionKey = "session_token"
)

// SessionManager signs and verifies session cookies. The token holds the
// user_id and exp claims, signed with HS256.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionManager(secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Sign returns a session token for the user.
func (m *SessionManager) Sign(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Issue sets the session cookie for the user.
func (m *SessionManager) Issue(c *fiber.Ctx, userID int64) error {
	signed, err := m.Sign(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *SessionManager) parse(raw string) (*jwt.Token, error) {
	return jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
}

// Optional stores the session token in c.Locals("user") when the cookie holds
// a valid one. Requests without a usable cookie continue anonymously.
func (m *SessionManager) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Cookies(SessionCookie); raw != "" {
			if tok, err := m.parse(raw); err == nil && tok.Valid {
				c.Locals(userKey, tok)
			}
		}
		return c.Next()
	}
}

// Required rejects requests without a valid session cookie.
func (m *SessionManager) Required() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    m.secret,
		SigningMethod: "HS256",
		TokenLookup:   "cookie:" + SessionCookie,
		ContextKey:    sessionKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return LoginRequired(c)
		},
	})
}

// LoginRequired writes the 401 body that sends the client to the login page.
func LoginRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message":  "login required",
		"redirect": "/login",
	})
}

// UserIDFromCtx reads the user_id claim of the session token in c.Locals("user").
func UserIDFromCtx(c *fiber.Ctx) (int64, error) {
	tok, ok := c.Locals(userKey).(*jwt.Token)
	if !ok || tok == nil {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}
