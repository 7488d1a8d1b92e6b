package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/interface/presenter"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// UserHandler serves profile settings and the admin pages.
type UserHandler struct {
	users     usecase.UserUsecase
	catalog   usecase.CatalogUsecase
	presenter *presenter.UserPresenter
	products  *presenter.ProductPresenter
	validate  *RequestValidator
	log       *zap.Logger
}

func NewUserHandler(
	users usecase.UserUsecase,
	catalog usecase.CatalogUsecase,
	presenter *presenter.UserPresenter,
	products *presenter.ProductPresenter,
	validate *RequestValidator,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{
		users:     users,
		catalog:   catalog,
		presenter: presenter,
		products:  products,
		validate:  validate,
		log:       log,
	}
}

func (h *UserHandler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/v1/profile", h.getProfile)
	app.Put("/api/v1/profile", h.updateProfile)

	app.Get("/api/v1/admin/dashboard", h.dashboard)
	app.Post("/api/v1/admin/products/:id<int>/:action", h.moderate)
	app.Delete("/api/v1/admin/users/:id<int>", h.deleteUser)
}

type profileForm struct {
	Username string `form:"username" json:"username" validate:"max=80"`
	Phone    string `form:"mobile_number" json:"mobile_number" validate:"max=32"`
}

func (h *UserHandler) getProfile(c *fiber.Ctx) error {
	user, err := h.users.Profile(c.UserContext(), middleware.IdentityFromCtx(c))
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{"user": h.presenter.ToResponse(user)})
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	form := new(profileForm)
	if err := bind(c, form); err != nil {
		return badRequest(c, err.Error())
	}
	echo := fiber.Map{"input": form}
	if fields := h.validate.Fields(form); fields != nil {
		return invalidForm(c, fields, echo)
	}

	input := usecase.UpdateProfileInput{Username: form.Username, Phone: form.Phone}
	if files := formFiles(c, "profile_picture"); len(files) > 0 {
		input.Avatar = &files[0]
	}
	user, err := h.users.UpdateProfile(c.UserContext(), middleware.IdentityFromCtx(c), input)
	if err != nil {
		return writeError(c, h.log, err, echo)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully!",
		"user":    h.presenter.ToResponse(user),
	})
}

func (h *UserHandler) dashboard(c *fiber.Ctx) error {
	d, err := h.users.AdminDashboard(c.UserContext(), middleware.IdentityFromCtx(c))
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(presenter.ToDashboard(d, h.products, h.presenter))
}

func (h *UserHandler) moderate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	action := c.Params("action")
	product, err := h.catalog.Moderate(c.UserContext(), middleware.IdentityFromCtx(c), id, action)
	if err != nil {
		return writeError(c, h.log, err, nil)
	}

	var notices []usecase.Notice
	switch action {
	case usecase.ActionAccept:
		notices = notice(usecase.NoticeSuccess, fmt.Sprintf("Product %q has been accepted.", product.Name))
	case usecase.ActionReject:
		notices = notice(usecase.NoticeWarning, fmt.Sprintf("Product %q has been rejected.", product.Name))
	default:
		notices = notice(usecase.NoticeSuccess, fmt.Sprintf("Product %q has been deleted.", product.Name))
	}
	body := fiber.Map{"message": notices[0].Message, "notices": notices}
	if action != usecase.ActionDelete {
		body["product"] = h.products.ToResponse(product, nil)
	}
	return c.JSON(body)
}

func (h *UserHandler) deleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.users.DeleteUser(c.UserContext(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return writeError(c, h.log, err, nil)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %q and all their products have been deleted.", user.Username),
	})
}
