package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/buytouch-backend/internal/interface/http/middleware"
	"github.com/wichananm65/buytouch-backend/internal/interface/presenter"
	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

type fakeImages struct {
	mu     sync.Mutex
	stored []string
}

func (f *fakeImages) Store(ctx context.Context, file usecase.Upload) (string, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	if file.Filename == "" || (ext != ".png" && ext != ".jpg") {
		return "", errors.New("file type not allowed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := "uploads/" + file.Filename
	f.stored = append(f.stored, p)
	return p, nil
}

func (f *fakeImages) Delete(ctx context.Context, p string) error { return nil }

type fakeProvider struct {
	enabled bool
	profile usecase.FederatedProfile
	err     error
}

func (f *fakeProvider) Enabled() bool { return f.enabled }

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (usecase.FederatedProfile, error) {
	return f.profile, f.err
}

type testEnv struct {
	ctx      context.Context
	store    *inmemory.Store
	auth     *usecase.AuthService
	sessions *middleware.SessionManager
	google   *fakeProvider
	app      *fiber.App
}

// newEnv wires real services over the in-memory store. Instead of the cookie
// guard, a small middleware injects a jwt.Token into locals when the
// X-User-ID header is set.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	store := inmemory.NewStore()
	images := &fakeImages{}

	catalog := usecase.NewCatalogService(store, images, log)
	auth := usecase.NewAuthService(store, usecase.AdminCredentials{Username: "admin_master", Password: "admin_p@ssw0rd"}, log)

	users := presenter.NewUserPresenter(presenter.LocalAssets)
	products := presenter.NewProductPresenter(presenter.LocalAssets, users)
	sessions := middleware.NewSessionManager("test-secret", time.Hour, false)
	google := &fakeProvider{}
	validate := NewRequestValidator()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	app.Use(middleware.ResolveIdentity(auth))

	authHandler := NewAuthHandler(auth, sessions, google, users, validate, false, log)
	productHandler := NewProductHandler(catalog, products, validate, log)
	shoppingHandler := NewShoppingHandler(usecase.NewShoppingService(store, log), presenter.NewShoppingPresenter(products, users), log)
	commentHandler := NewCommentHandler(usecase.NewCommentService(store), products, log)
	userHandler := NewUserHandler(usecase.NewUserService(store, images, log), catalog, users, products, validate, log)

	authHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	shoppingHandler.RegisterPublicRoutes(app)
	authHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	shoppingHandler.RegisterProtectedRoutes(app)
	commentHandler.RegisterProtectedRoutes(app)
	userHandler.RegisterProtectedRoutes(app)

	return &testEnv{
		ctx:      context.Background(),
		store:    store,
		auth:     auth,
		sessions: sessions,
		google:   google,
		app:      app,
	}
}

func (e *testEnv) user(t *testing.T, username string) *entity.User {
	t.Helper()
	u, err := e.store.Users().Create(e.ctx, &entity.User{
		ExternalID: "ext-" + username,
		Email:      username + "@example.com",
		Username:   username,
		Avatar:     entity.DefaultAvatar,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) admin(t *testing.T) *entity.User {
	t.Helper()
	u, err := e.auth.AuthenticateAdmin(e.ctx, "admin_master", "admin_p@ssw0rd")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	return u
}

func (e *testEnv) product(t *testing.T, seller *entity.User, name, price string, status entity.Status) *entity.Product {
	t.Helper()
	p, err := e.store.Products().Create(e.ctx, &entity.Product{
		Name:     name,
		Category: "Apple",
		Price:    decimal.RequireFromString(price),
		SellerID: seller.ID,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if _, err := e.store.Images().Create(e.ctx, &entity.ProductImage{ProductID: p.ID, Path: "uploads/" + name + strconv.Itoa(i) + ".png"}); err != nil {
			t.Fatalf("create image: %v", err)
		}
	}
	return p
}

// call sends req as user (0 for anonymous) and decodes the JSON body.
func (e *testEnv) call(t *testing.T, req *http.Request, user *entity.User) (int, map[string]any) {
	t.Helper()
	if user != nil {
		req.Header.Set("X-User-ID", strconv.FormatInt(user.ID, 10))
	}
	res, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	b, _ := io.ReadAll(res.Body)
	var body map[string]any
	if len(b) > 0 {
		if err := json.Unmarshal(b, &body); err != nil {
			t.Fatalf("response is not a JSON object: %s", b)
		}
	}
	return res.StatusCode, body
}

func jsonRequest(method, target string, payload any) *http.Request {
	var buf bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&buf).Encode(payload)
	}
	req, _ := http.NewRequest(method, target, &buf)
	if payload != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return req
}

// multipartRequest builds a form with string fields and files named as given.
func multipartRequest(t *testing.T, method, target string, fields map[string][]string, files map[string][]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, values := range fields {
		for _, v := range values {
			if err := w.WriteField(k, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for field, names := range files {
		for _, name := range names {
			fw, err := w.CreateFormFile(field, name)
			if err != nil {
				t.Fatalf("create form file: %v", err)
			}
			_, _ = fw.Write([]byte("image-bytes"))
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req, _ := http.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func withID(format string, id int64) string {
	return strings.Replace(format, ":id", strconv.FormatInt(id, 10), 1)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
