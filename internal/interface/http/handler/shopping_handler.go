package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/interface/presenter"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// ShoppingHandler serves the cart, checkout and favorites.
type ShoppingHandler struct {
	shopping  usecase.ShoppingUsecase
	presenter *presenter.ShoppingPresenter
	log       *zap.Logger
}

func NewShoppingHandler(shopping usecase.ShoppingUsecase, presenter *presenter.ShoppingPresenter, log *zap.Logger) *ShoppingHandler {
	return &ShoppingHandler{shopping: shopping, presenter: presenter, log: log}
}

func (h *ShoppingHandler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/cart", h.viewCart)
	app.Get("/api/v1/favorites", h.viewFavorites)
}

func (h *ShoppingHandler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/v1/cart/:productId<int>", h.addToCart)
	app.Delete("/api/v1/cart/:cartId<int>", h.removeFromCart)
	app.Get("/api/v1/checkout", h.checkout)
	app.Post("/api/v1/favorites/:productId<int>", h.addFavorite)
	app.Delete("/api/v1/favorites/:favoriteId<int>", h.removeFavorite)
}

// rejection rewords the shared business errors for the list being edited.
func rejection(err error, list string) fiber.Map {
	switch {
	case errors.Is(err, usecase.ErrOwnProduct):
		return fiber.Map{"message": fmt.Sprintf("You cannot add your own product to %s.", list)}
	case errors.Is(err, usecase.ErrProductUnavailable):
		if list == "favorites" {
			return fiber.Map{"message": "This product is not available to be favorited."}
		}
		return fiber.Map{"message": "This product is not available for purchase."}
	}
	return nil
}

func (h *ShoppingHandler) viewCart(c *fiber.Ctx) error {
	view, err := h.shopping.ViewCart(c.UserContext(), middleware.IdentityFromCtx(c))
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(h.presenter.ToCart(view))
}

func (h *ShoppingHandler) addToCart(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	line, err := h.shopping.AddToCart(c.UserContext(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return writeError(c, h.log, err, rejection(err, "the cart"))
	}

	msg := fmt.Sprintf("Product %q added to cart!", line.ProductName())
	if line.Item.Quantity > 1 {
		msg = fmt.Sprintf("Quantity of %q in cart increased to %d!", line.ProductName(), line.Item.Quantity)
	}
	return c.JSON(fiber.Map{"message": msg, "item": h.presenter.ToLine(*line)})
}

func (h *ShoppingHandler) removeFromCart(c *fiber.Ctx) error {
	id, err := paramID(c, "cartId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	line, err := h.shopping.RemoveFromCart(c.UserContext(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Product %q removed from cart!", line.ProductName())})
}

func (h *ShoppingHandler) checkout(c *fiber.Ctx) error {
	summary, err := h.shopping.Checkout(c.UserContext(), middleware.IdentityFromCtx(c))
	if errors.Is(err, usecase.ErrEmptyCart) {
		return writeError(c, h.log, err, fiber.Map{
			"message": "Your cart is empty. Nothing to checkout.",
			"notices": h.presenter.ToCheckout(summary).Notices,
		})
	}
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(h.presenter.ToCheckout(summary))
}

func (h *ShoppingHandler) viewFavorites(c *fiber.Ctx) error {
	view, err := h.shopping.ViewFavorites(c.UserContext(), middleware.IdentityFromCtx(c))
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(h.presenter.ToFavorites(view))
}

func (h *ShoppingHandler) addFavorite(c *fiber.Ctx) error {
	id, err := paramID(c, "productId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	line, already, err := h.shopping.AddFavorite(c.UserContext(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return writeError(c, h.log, err, rejection(err, "favorites"))
	}

	if already {
		return c.JSON(fiber.Map{
			"message":  fmt.Sprintf("Product %q is already in your favorites!", line.ProductName()),
			"favorite": h.presenter.ToFavorite(*line),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  fmt.Sprintf("Product %q added to favorites!", line.ProductName()),
		"favorite": h.presenter.ToFavorite(*line),
	})
}

func (h *ShoppingHandler) removeFavorite(c *fiber.Ctx) error {
	id, err := paramID(c, "favoriteId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	line, err := h.shopping.RemoveFavorite(c.UserContext(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Product %q removed from favorites!", line.ProductName())})
}
