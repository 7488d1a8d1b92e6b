package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/interface/presenter"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

type CommentHandler struct {
	comments  usecase.CommentUsecase
	presenter *presenter.ProductPresenter
	log       *zap.Logger
}

func NewCommentHandler(comments usecase.CommentUsecase, presenter *presenter.ProductPresenter, log *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, presenter: presenter, log: log}
}

func (h *CommentHandler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/v1/products/:id<int>/comments", h.add)
	app.Delete("/api/v1/comments/:id<int>", h.remove)
}

type commentForm struct {
	Content string `form:"content" json:"content"`
}

func (h *CommentHandler) add(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	form := new(commentForm)
	if err := bind(c, form); err != nil {
		return badRequest(c, err.Error())
	}

	identity := middleware.IdentityFromCtx(c)
	comment, err := h.comments.AddComment(c.UserContext(), identity, productID, form.Content)
	if err != nil {
		return writeError(c, h.log, err, fiber.Map{"input": form})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully!",
		"comment": h.presenter.ToComment(comment, identity.User),
	})
}

func (h *CommentHandler) remove(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	productID, err := h.comments.DeleteComment(c.UserContext(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully!", "product_id": productID})
}
