package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

func TestComments(t *testing.T) {
	env := newEnv(t)
	seller := env.user(t, "seller")
	author := env.user(t, "author")
	other := env.user(t, "other")
	p := env.product(t, seller, "Laptop", "800", entity.StatusAccepted)
	target := withID("/api/v1/products/:id/comments", p.ID)

	status, body := env.call(t, jsonRequest("POST", target, map[string]string{"content": "   "}), author)
	if status != fiber.StatusUnprocessableEntity || body["message"] != "Comment cannot be empty!" {
		t.Fatalf("expected empty comment rejection, got %d %v", status, body)
	}

	status, body = env.call(t, jsonRequest("POST", target, map[string]string{"content": "  Still available?  "}), author)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d %v", status, body)
	}
	comment := body["comment"].(map[string]any)
	if comment["content"] != "Still available?" {
		t.Fatalf("expected trimmed content, got %v", comment["content"])
	}
	commentID := int64(comment["id"].(float64))

	status, body = env.call(t, httptest.NewRequest("GET", withID("/api/v1/products/:id", p.ID), nil), nil)
	if status != fiber.StatusOK || len(body["comments"].([]any)) != 1 {
		t.Fatalf("expected the comment on the detail page, got %d %v", status, body)
	}

	status, _ = env.call(t, httptest.NewRequest(http.MethodDelete, withID("/api/v1/comments/:id", commentID), nil), other)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", status)
	}
	status, body = env.call(t, httptest.NewRequest(http.MethodDelete, withID("/api/v1/comments/:id", commentID), nil), author)
	if status != fiber.StatusOK || body["product_id"] != float64(p.ID) {
		t.Fatalf("expected delete to report the product, got %d %v", status, body)
	}

	status, _ = env.call(t, jsonRequest("POST", withID("/api/v1/products/:id/comments", 999), map[string]string{"content": "hi"}), author)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", status)
	}
}
