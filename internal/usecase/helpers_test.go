package usecase

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
	"github.com/wichananm65/buytouch-backend/internal/infrastructure/database/inmemory"
)

// fakeImages accepts png/jpg uploads and records deletions.
type fakeImages struct {
	mu      sync.Mutex
	stored  []string
	deleted []string
}

func (f *fakeImages) Store(ctx context.Context, file Upload) (string, error) {
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

func (f *fakeImages) Delete(ctx context.Context, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, p)
	return nil
}

func uploads(names ...string) []Upload {
	out := make([]Upload, 0, len(names))
	for _, n := range names {
		out = append(out, Upload{Filename: n, Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("img")), nil
		}})
	}
	return out
}

type fixture struct {
	ctx      context.Context
	store    *inmemory.Store
	images   *fakeImages
	catalog  *CatalogService
	shopping *ShoppingService
	comments *CommentService
	users    *UserService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := inmemory.NewStore()
	images := &fakeImages{}
	log := zap.NewNop()
	return &fixture{
		ctx:      context.Background(),
		store:    store,
		images:   images,
		catalog:  NewCatalogService(store, images, log),
		shopping: NewShoppingService(store, log),
		comments: NewCommentService(store),
		users:    NewUserService(store, images, log),
		auth:     NewAuthService(store, AdminCredentials{Username: "admin_master", Password: "admin_p@ssw0rd"}, log),
	}
}

func (f *fixture) user(t *testing.T, username string) Identity {
	t.Helper()
	u, err := f.store.Users().Create(f.ctx, &entity.User{
		ExternalID: "ext-" + username,
		Email:      username + "@example.com",
		Username:   username,
		Avatar:     entity.DefaultAvatar,
	})
	require.NoError(t, err)
	return Identity{User: u}
}

func (f *fixture) admin(t *testing.T) Identity {
	t.Helper()
	u, err := f.auth.AuthenticateAdmin(f.ctx, "admin_master", "admin_p@ssw0rd")
	require.NoError(t, err)
	return Identity{User: u}
}

// product creates a listing for seller and moves it to status.
func (f *fixture) product(t *testing.T, seller Identity, name, price string, status entity.Status) *ProductView {
	t.Helper()
	view, err := f.catalog.CreateProduct(f.ctx, seller, ProductInput{Name: name, Category: "Apple", Price: price}, uploads(name+"-1.png", name+"-2.png"))
	require.NoError(t, err)
	if status != entity.StatusPending {
		view.Product.Status = status
		p, err := f.store.Products().Update(f.ctx, view.Product)
		require.NoError(t, err)
		view.Product = p
	}
	return view
}

func (f *fixture) count(t *testing.T) (products, images int) {
	t.Helper()
	all, err := f.store.Products().List(f.ctx, repository.ProductFilter{})
	require.NoError(t, err)
	ids := make([]int64, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	imgs, err := f.store.Images().ListByProducts(f.ctx, ids)
	require.NoError(t, err)
	return len(all), len(imgs)
}
