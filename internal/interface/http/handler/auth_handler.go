package handler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/interface/presenter"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute

	loginPath         = "/login"
	googleFailedLogin = "Google login failed. Please try again."
)

// FederatedProvider runs a redirect based login with an identity provider.
type FederatedProvider interface {
	Enabled() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (usecase.FederatedProfile, error)
}

type AuthHandler struct {
	auth      usecase.AuthUsecase
	sessions  *middleware.SessionManager
	google    FederatedProvider
	presenter *presenter.UserPresenter
	validate  *RequestValidator
	secure    bool
	log       *zap.Logger
}

func NewAuthHandler(
	auth usecase.AuthUsecase,
	sessions *middleware.SessionManager,
	google FederatedProvider,
	presenter *presenter.UserPresenter,
	validate *RequestValidator,
	secure bool,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		sessions:  sessions,
		google:    google,
		presenter: presenter,
		validate:  validate,
		secure:    secure,
		log:       log,
	}
}

func (h *AuthHandler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/session", h.session)
	app.Get("/api/v1/login", h.loginInfo)
	app.Post("/api/v1/admin/login", h.adminLogin)
	app.Get("/api/v1/auth/google/login", h.googleLogin)
	app.Get("/api/v1/auth/google/callback", h.googleCallback)
}

func (h *AuthHandler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/v1/logout", h.logout)
}

type adminLoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (h *AuthHandler) session(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	if !identity.IsAuthenticated() {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          h.presenter.ToResponse(identity.User),
	})
}

func (h *AuthHandler) loginInfo(c *fiber.Ctx) error {
	if middleware.IdentityFromCtx(c).IsAuthenticated() {
		return c.JSON(fiber.Map{"message": "You are already logged in.", "redirect": "/"})
	}
	methods := []string{"admin"}
	if h.google.Enabled() {
		methods = append(methods, "google")
	}
	return c.JSON(fiber.Map{"methods": methods})
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	form := new(adminLoginForm)
	if err := bind(c, form); err != nil {
		return badRequest(c, err.Error())
	}
	if fields := h.validate.Fields(form); fields != nil {
		return invalidForm(c, fields, nil)
	}

	user, err := h.auth.AuthenticateAdmin(c.UserContext(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid admin credentials."})
		}
		return writeError(c, h.log, err, nil)
	}
	if err := h.sessions.Issue(c, user.ID); err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{
		"message": "Admin login successful!",
		"user":    h.presenter.ToResponse(user),
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{"message": "You have been logged out."})
}

func (h *AuthHandler) googleLogin(c *fiber.Ctx) error {
	if !h.google.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Google login is not configured."})
	}
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/v1/auth/google",
		Expires:  time.Now().Add(stateTTL),
		Secure:   h.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.google.AuthCodeURL(state), fiber.StatusFound)
}

func (h *AuthHandler) googleFailed(c *fiber.Ctx, reason string, err error) error {
	h.log.Warn("google login failed", zap.String("reason", reason), zap.Error(err))
	return c.Redirect(loginPath+"?notice="+url.QueryEscape(googleFailedLogin), fiber.StatusFound)
}

func (h *AuthHandler) googleCallback(c *fiber.Ctx) error {
	expected := c.Cookies(stateCookie)
	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Path:     "/api/v1/auth/google",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   h.secure,
		HTTPOnly: true,
	})

	if !h.google.Enabled() {
		return h.googleFailed(c, "provider disabled", nil)
	}
	if msg := c.Query("error"); msg != "" {
		return h.googleFailed(c, "provider error", errors.New(msg))
	}
	if expected == "" || c.Query("state") != expected {
		return h.googleFailed(c, "state mismatch", nil)
	}

	profile, err := h.google.Exchange(c.UserContext(), c.Query("code"))
	if err != nil {
		return h.googleFailed(c, "exchange", err)
	}
	user, err := h.auth.AuthenticateFederated(c.UserContext(), profile)
	if err != nil {
		return h.googleFailed(c, "authenticate", err)
	}
	if err := h.sessions.Issue(c, user.ID); err != nil {
		return h.googleFailed(c, "session", err)
	}
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	return c.Redirect("/?notice="+url.QueryEscape(fmt.Sprintf("Welcome back, %s!", name)), fiber.StatusFound)
}
