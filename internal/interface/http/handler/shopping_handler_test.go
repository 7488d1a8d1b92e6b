package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
)

func TestCartFlow(t *testing.T) {
	env := newEnv(t)
	seller := env.user(t, "seller")
	buyer := env.user(t, "buyer")
	p := env.product(t, seller, "Charger", "10.50", entity.StatusAccepted)
	pending := env.product(t, seller, "Cable", "5", entity.StatusPending)

	status, body := env.call(t, httptest.NewRequest("GET", "/api/v1/cart", nil), nil)
	if status != fiber.StatusOK || len(body["items"].([]any)) != 0 {
		t.Fatalf("expected empty cart for anonymous, got %d %v", status, body)
	}
	if len(body["notices"].([]any)) != 1 {
		t.Fatalf("expected a login notice, got %v", body["notices"])
	}

	status, body = env.call(t, httptest.NewRequest("POST", withID("/api/v1/cart/:id", p.ID), nil), buyer)
	if status != fiber.StatusOK || body["message"] != `Product "Charger" added to cart!` {
		t.Fatalf("unexpected first add %d %v", status, body)
	}
	status, body = env.call(t, httptest.NewRequest("POST", withID("/api/v1/cart/:id", p.ID), nil), buyer)
	if status != fiber.StatusOK || body["message"] != `Quantity of "Charger" in cart increased to 2!` {
		t.Fatalf("unexpected second add %d %v", status, body)
	}

	status, body = env.call(t, httptest.NewRequest("POST", withID("/api/v1/cart/:id", p.ID), nil), seller)
	if status != fiber.StatusConflict || body["message"] != "You cannot add your own product to the cart." {
		t.Fatalf("expected own product rejection, got %d %v", status, body)
	}
	status, body = env.call(t, httptest.NewRequest("POST", withID("/api/v1/cart/:id", pending.ID), nil), buyer)
	if status != fiber.StatusConflict || body["message"] != "This product is not available for purchase." {
		t.Fatalf("expected unavailable rejection, got %d %v", status, body)
	}

	status, body = env.call(t, httptest.NewRequest("GET", "/api/v1/cart", nil), buyer)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	items := body["items"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["quantity"] != float64(2) || body["total"] != "21" {
		t.Fatalf("unexpected cart %v", body)
	}

	status, body = env.call(t, httptest.NewRequest("GET", "/api/v1/checkout", nil), buyer)
	if status != fiber.StatusOK {
		t.Fatalf("expected checkout 200, got %d %v", status, body)
	}
	sellers := body["sellers"].([]any)
	if len(sellers) != 1 || sellers[0].(map[string]any)["seller"].(map[string]any)["email"] != "seller@example.com" {
		t.Fatalf("unexpected checkout groups %v", sellers)
	}

	cartID := int64(items[0].(map[string]any)["id"].(float64))
	status, _ = env.call(t, httptest.NewRequest(http.MethodDelete, withID("/api/v1/cart/:id", cartID), nil), seller)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 removing another user's cart row, got %d", status)
	}
	status, body = env.call(t, httptest.NewRequest(http.MethodDelete, withID("/api/v1/cart/:id", cartID), nil), buyer)
	if status != fiber.StatusOK || body["message"] != `Product "Charger" removed from cart!` {
		t.Fatalf("unexpected remove %d %v", status, body)
	}

	status, body = env.call(t, httptest.NewRequest("GET", "/api/v1/checkout", nil), buyer)
	if status != fiber.StatusConflict || !strings.Contains(body["message"].(string), "cart is empty") {
		t.Fatalf("expected empty cart conflict, got %d %v", status, body)
	}
}

func TestCartPrunesUnavailableProducts(t *testing.T) {
	env := newEnv(t)
	seller := env.user(t, "seller")
	buyer := env.user(t, "buyer")
	p := env.product(t, seller, "Tablet", "200", entity.StatusAccepted)

	if status, _ := env.call(t, httptest.NewRequest("POST", withID("/api/v1/cart/:id", p.ID), nil), buyer); status != fiber.StatusOK {
		t.Fatalf("add failed with %d", status)
	}
	p.Status = entity.StatusRejected
	if _, err := env.store.Products().Update(env.ctx, p); err != nil {
		t.Fatalf("update product: %v", err)
	}

	status, body := env.call(t, httptest.NewRequest("GET", "/api/v1/cart", nil), buyer)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(body["items"].([]any)) != 0 || body["total"] != "0" {
		t.Fatalf("expected pruned cart, got %v", body)
	}
	notices := body["notices"].([]any)
	if len(notices) != 1 || notices[0].(map[string]any)["level"] != "warning" {
		t.Fatalf("expected a removal warning, got %v", notices)
	}
}

func TestFavorites(t *testing.T) {
	env := newEnv(t)
	seller := env.user(t, "seller")
	buyer := env.user(t, "buyer")
	p := env.product(t, seller, "Watch", "250", entity.StatusAccepted)

	status, body := env.call(t, httptest.NewRequest("POST", withID("/api/v1/favorites/:id", p.ID), nil), buyer)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d %v", status, body)
	}
	status, body = env.call(t, httptest.NewRequest("POST", withID("/api/v1/favorites/:id", p.ID), nil), buyer)
	if status != fiber.StatusOK || body["message"] != `Product "Watch" is already in your favorites!` {
		t.Fatalf("expected already favorited, got %d %v", status, body)
	}
	status, body = env.call(t, httptest.NewRequest("POST", withID("/api/v1/favorites/:id", p.ID), nil), seller)
	if status != fiber.StatusConflict || body["message"] != "You cannot add your own product to favorites." {
		t.Fatalf("expected own product rejection, got %d %v", status, body)
	}

	status, body = env.call(t, httptest.NewRequest("GET", "/api/v1/favorites", nil), buyer)
	items := body["items"].([]any)
	if status != fiber.StatusOK || len(items) != 1 {
		t.Fatalf("expected one favorite, got %d %v", status, body)
	}

	favID := int64(items[0].(map[string]any)["id"].(float64))
	status, body = env.call(t, httptest.NewRequest(http.MethodDelete, withID("/api/v1/favorites/:id", favID), nil), buyer)
	if status != fiber.StatusOK || body["message"] != `Product "Watch" removed from favorites!` {
		t.Fatalf("unexpected remove %d %v", status, body)
	}
}
