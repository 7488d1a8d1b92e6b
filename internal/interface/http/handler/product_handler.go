package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/interface/presenter"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// ProductHandler serves browsing and the seller side of the catalog.
type ProductHandler struct {
	catalog   usecase.CatalogUsecase
	presenter *presenter.ProductPresenter
	validate  *RequestValidator
	log       *zap.Logger
}

func NewProductHandler(catalog usecase.CatalogUsecase, presenter *presenter.ProductPresenter, validate *RequestValidator, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, presenter: presenter, validate: validate, log: log}
}

func (h *ProductHandler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/products", h.browse)
	app.Get("/api/v1/products/:id<int>", h.detail)
	app.Get("/api/v1/categories", h.categories)
}

func (h *ProductHandler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/v1/products/new", h.form)
	app.Post("/api/v1/products", h.create)
	app.Put("/api/v1/products/:id<int>", h.edit)
	app.Delete("/api/v1/products/:id<int>", h.remove)
	app.Get("/api/v1/my-products", h.mine)
}

type productForm struct {
	Name        string `form:"name" json:"name" validate:"required,max=200"`
	Category    string `form:"category" json:"category" validate:"required,max=100"`
	Brand       string `form:"brand" json:"brand" validate:"max=100"`
	Description string `form:"description" json:"description" validate:"max=5000"`
	Price       string `form:"price" json:"price" validate:"required"`
}

func (f productForm) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        f.Name,
		Category:    f.Category,
		Brand:       f.Brand,
		Description: f.Description,
		Price:       f.Price,
	}
}

type editForm struct {
	Name        string `form:"name" json:"name" validate:"required,max=200"`
	Category    string `form:"category" json:"category" validate:"required,max=100"`
	Brand       string `form:"brand" json:"brand" validate:"max=100"`
	Description string `form:"description" json:"description" validate:"max=5000"`
	Price       string `form:"price" json:"price" validate:"required"`
	Status      string `form:"status" json:"status" validate:"omitempty,oneof=pending accepted rejected"`
}

func (f editForm) input(keep []int64) usecase.EditProductInput {
	return usecase.EditProductInput{
		ProductInput: usecase.ProductInput{
			Name:        f.Name,
			Category:    f.Category,
			Brand:       f.Brand,
			Description: f.Description,
			Price:       f.Price,
		},
		KeepImageIDs: keep,
		Status:       f.Status,
	}
}

func (h *ProductHandler) browse(c *fiber.Ctx) error {
	result, err := h.catalog.Browse(c.UserContext(), c.Query("q"), c.Query("category"))
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(h.presenter.ToBrowse(result))
}

func (h *ProductHandler) detail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	detail, err := h.catalog.ProductDetail(c.UserContext(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(h.presenter.ToDetail(detail))
}

func (h *ProductHandler) categories(c *fiber.Ctx) error {
	cats, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

func (h *ProductHandler) form(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	if err := usecase.Require(identity, usecase.Authenticated()); err != nil {
		return writeError(c, h.log, err, nil)
	}
	cats, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(h.presenter.ToForm(cats, identity.IsAdmin()))
}

func (h *ProductHandler) create(c *fiber.Ctx) error {
	form := new(productForm)
	if err := bind(c, form); err != nil {
		return badRequest(c, err.Error())
	}
	echo := fiber.Map{"input": form}
	if fields := h.validate.Fields(form); fields != nil {
		return invalidForm(c, fields, echo)
	}

	view, err := h.catalog.CreateProduct(c.UserContext(), middleware.IdentityFromCtx(c), form.input(), formFiles(c, "images"))
	if err != nil {
		return writeError(c, h.log, err, echo)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully and submitted for approval!",
		"product": h.presenter.ToView(view),
	})
}

func (h *ProductHandler) edit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	form := new(editForm)
	if err := bind(c, form); err != nil {
		return badRequest(c, err.Error())
	}
	echo := fiber.Map{"input": form}
	if fields := h.validate.Fields(form); fields != nil {
		return invalidForm(c, fields, echo)
	}

	input := form.input(formIDs(c, "current_image_ids"))
	view, err := h.catalog.EditProduct(c.UserContext(), middleware.IdentityFromCtx(c), id, input, formFiles(c, "images"))
	if err != nil {
		if view != nil {
			echo["product"] = h.presenter.ToView(view)
		}
		return writeError(c, h.log, err, echo)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully!",
		"product": h.presenter.ToView(view),
	})
}

func (h *ProductHandler) remove(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if _, err := h.catalog.DeleteProduct(c.UserContext(), middleware.IdentityFromCtx(c), id); err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully."})
}

func (h *ProductHandler) mine(c *fiber.Ctx) error {
	views, err := h.catalog.ListMine(c.UserContext(), middleware.IdentityFromCtx(c))
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"products": h.presenter.ToList(views)})
}
