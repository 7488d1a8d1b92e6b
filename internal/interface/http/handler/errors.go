package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// validationMessage heads 422 bodies produced by form validation.
const validationMessage = "Please correct the highlighted fields."

func statusOf(err error) int {
	switch {
	case usecase.IsValidation(err):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrLoginRequired), errors.Is(err, usecase.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrAdminAccount):
		return fiber.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrEmptyCart), errors.Is(err, usecase.ErrOwnProduct), errors.Is(err, usecase.ErrProductUnavailable):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders a use case error. extra is merged into the body, which
// lets validation failures echo the submitted form; a "message" in extra
// replaces the error text for 4xx responses other than 422.
func writeError(c *fiber.Ctx, log *zap.Logger, err error, extra fiber.Map) error {
	status := statusOf(err)
	if status == fiber.StatusUnauthorized && errors.Is(err, usecase.ErrLoginRequired) {
		return middleware.LoginRequired(c)
	}

	body := fiber.Map{}
	for k, v := range extra {
		body[k] = v
	}
	switch status {
	case fiber.StatusInternalServerError:
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		body["message"] = "internal server error"
	case fiber.StatusUnprocessableEntity:
		var v *usecase.ValidationError
		errors.As(err, &v)
		body["message"] = v.Message
		body["errors"] = map[string]string{v.Field: v.Message}
	default:
		if _, ok := body["message"]; !ok {
			body["message"] = err.Error()
		}
	}
	return c.Status(status).JSON(body)
}

func invalidForm(c *fiber.Ctx, fields map[string]string, extra fiber.Map) error {
	body := fiber.Map{"message": validationMessage, "errors": fields}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

func notice(level, message string) []usecase.Notice {
	return []usecase.Notice{{Level: level, Message: message}}
}
