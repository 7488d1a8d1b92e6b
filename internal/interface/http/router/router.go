package router

import (
	"errors"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/interface/http/handler"
	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// Options configures the fiber app.
type Options struct {
	BodyLimit    int
	AllowOrigins string
	// PublicDir holds the uploads/ and img/ directories served as static files.
	PublicDir  string
	Production bool
}

// Handlers groups everything that registers routes.
type Handlers struct {
	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Shopping *handler.ShoppingHandler
	Comments *handler.CommentHandler
	Users    *handler.UserHandler
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "internal server error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			msg = e.Message
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"message": msg})
	}
}

// New builds the application: middleware chain, public routes, then the
// session guard and protected routes.
func New(opts Options, sessions *middleware.SessionManager, auth usecase.AuthUsecase, h Handlers, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "buytouch",
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: errorHandler(log),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New(recover.Config{EnableStackTrace: !opts.Production}))
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		// images are fetched cross origin by the frontend
		CrossOriginResourcePolicy: "cross-origin",
	}))
	origins := opts.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: origins != "*",
		ExposeHeaders:    fiber.HeaderXRequestID,
		MaxAge:           86400,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if opts.PublicDir != "" {
		app.Static("/uploads", filepath.Join(opts.PublicDir, "uploads"))
		app.Static("/img", filepath.Join(opts.PublicDir, "img"))
	}

	app.Use(sessions.Optional(), middleware.ResolveIdentity(auth))

	h.Auth.RegisterPublicRoutes(app)
	h.Products.RegisterPublicRoutes(app)
	h.Shopping.RegisterPublicRoutes(app)

	app.Use(sessions.Required())

	h.Auth.RegisterProtectedRoutes(app)
	h.Products.RegisterProtectedRoutes(app)
	h.Shopping.RegisterProtectedRoutes(app)
	h.Comments.RegisterProtectedRoutes(app)
	h.Users.RegisterProtectedRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "The requested resource was not found"})
	})
	return app
}
