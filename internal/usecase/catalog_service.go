package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// CatalogService implements CatalogUsecase over a repository.Store.
type CatalogService struct {
	store  repository.Store
	images ImageStore
	log    *zap.Logger
	now    func() time.Time
}

var _ CatalogUsecase = (*CatalogService)(nil)

func NewCatalogService(store repository.Store, images ImageStore, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, images: images, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, invalid("price", "Invalid price format. Price must be a number.")
	}
	if price.IsNegative() {
		return decimal.Zero, invalid("price", "Invalid price. Price must be a positive number.")
	}
	return price.Round(2), nil
}

func (in ProductInput) apply(p *entity.Product) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("name", "Product name is required.")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return err
	}
	p.Name = name
	p.Category = strings.TrimSpace(in.Category)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = price
	return nil
}

// storeImages saves each upload and records it against the product. Uploads
// the store rejects are skipped.
func (s *CatalogService) storeImages(ctx context.Context, tx repository.Store, productID int64, files []Upload) ([]*entity.ProductImage, []string, error) {
	images := make([]*entity.ProductImage, 0, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path, err := s.images.Store(ctx, f)
		if err != nil {
			s.log.Warn("skipping product image", zap.String("filename", f.Filename), zap.Error(err))
			continue
		}
		paths = append(paths, path)
		img, err := tx.Images().Create(ctx, &entity.ProductImage{ProductID: productID, Path: path})
		if err != nil {
			return nil, paths, err
		}
		images = append(images, img)
	}
	return images, paths, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, id Identity, in ProductInput, files []Upload) (*ProductView, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	now := s.now()
	p := &entity.Product{SellerID: id.UserID(), Status: entity.StatusPending, CreatedAt: now, UpdatedAt: now}
	if err := in.apply(p); err != nil {
		return nil, err
	}

	var (
		view   *ProductView
		stored []string
	)
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		created, err := tx.Products().Create(ctx, p)
		if err != nil {
			return err
		}
		images, paths, err := s.storeImages(ctx, tx, created.ID, files)
		stored = paths
		if err != nil {
			return err
		}
		if len(images) < entity.MinProductImages {
			return invalid("images", "You need to upload at least 2 images.")
		}
		view = &ProductView{Product: created, Images: images}
		return nil
	})
	if err != nil {
		discardFiles(ctx, s.images, s.log, stored)
		return nil, err
	}
	return view, nil
}

func (s *CatalogService) EditProduct(ctx context.Context, id Identity, productID int64, in EditProductInput, files []Upload) (*ProductView, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	current, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := Require(id, Owner(current.SellerID), Admin()); err != nil {
		return nil, err
	}

	updated := *current
	if err := in.apply(&updated); err != nil {
		return s.restored(ctx, productID, err)
	}
	if id.IsAdmin() && in.Status != "" {
		status := entity.Status(in.Status)
		if !status.Valid() {
			return s.restored(ctx, productID, invalid("status", "Invalid status."))
		}
		updated.Status = status
	}
	updated.UpdatedAt = s.now()

	keep := make(map[int64]bool, len(in.KeepImageIDs))
	for _, imgID := range in.KeepImageIDs {
		keep[imgID] = true
	}

	var (
		view    *ProductView
		stored  []string
		removed []string
	)
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Images().ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		kept := make([]*entity.ProductImage, 0, len(existing))
		for _, img := range existing {
			if keep[img.ID] {
				kept = append(kept, img)
				continue
			}
			if err := tx.Images().Delete(ctx, img.ID); err != nil {
				return err
			}
			removed = append(removed, img.Path)
		}

		added, paths, err := s.storeImages(ctx, tx, productID, files)
		stored = paths
		if err != nil {
			return err
		}
		if len(kept)+len(added) < entity.MinProductImages {
			return invalid("images", "After editing, you still need to have at least 2 images.")
		}

		p, err := tx.Products().Update(ctx, &updated)
		if err != nil {
			return err
		}
		view = &ProductView{Product: p, Images: append(kept, added...)}
		return nil
	})
	if err != nil {
		discardFiles(ctx, s.images, s.log, stored)
		if IsValidation(err) {
			return s.restored(ctx, productID, err)
		}
		return nil, err
	}
	discardFiles(ctx, s.images, s.log, removed)
	return view, nil
}

// restored pairs a validation failure with the product as it is stored.
func (s *CatalogService) restored(ctx context.Context, productID int64, cause error) (*ProductView, error) {
	view, err := s.view(ctx, productID)
	if err != nil {
		return nil, err
	}
	return view, cause
}

func (s *CatalogService) view(ctx context.Context, productID int64) (*ProductView, error) {
	p, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	images, err := s.store.Images().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductView{Product: p, Images: images}, nil
}

// teardownProduct removes a product with its images and every row that
// references it. It returns the image paths to delete once committed.
func teardownProduct(ctx context.Context, tx repository.Store, productID int64) ([]string, error) {
	images, err := tx.Images().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(images))
	for _, img := range images {
		if err := tx.Images().Delete(ctx, img.ID); err != nil {
			return nil, err
		}
		paths = append(paths, img.Path)
	}
	if err := tx.Carts().DeleteByProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := tx.Favorites().DeleteByProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := tx.Comments().DeleteByProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := tx.Products().Delete(ctx, productID); err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *CatalogService) deleteProduct(ctx context.Context, productID int64) error {
	var paths []string
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var err error
		paths, err = teardownProduct(ctx, tx, productID)
		return err
	})
	if err != nil {
		return err
	}
	discardFiles(ctx, s.images, s.log, paths)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id Identity, productID int64) (*entity.Product, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	p, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := Require(id, Owner(p.SellerID), Admin()); err != nil {
		return nil, err
	}
	if err := s.deleteProduct(ctx, productID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Moderate(ctx context.Context, id Identity, productID int64, action string) (*entity.Product, error) {
	if err := Require(id, Admin()); err != nil {
		return nil, err
	}
	p, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionAccept, ActionReject:
		p.Status = entity.StatusAccepted
		if action == ActionReject {
			p.Status = entity.StatusRejected
		}
		var out *entity.Product
		err := s.store.InTx(ctx, func(tx repository.Store) error {
			var err error
			out, err = tx.Products().Update(ctx, p)
			return err
		})
		return out, err
	case ActionDelete:
		if err := s.deleteProduct(ctx, productID); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, invalid("action", "Invalid action.")
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	used, err := s.store.Products().Categories(ctx, entity.StatusAccepted)
	if err != nil {
		return nil, err
	}
	all := append(append([]string{}, entity.RecommendedCategories...), used...)
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, c := range all {
		if _, ok := seen[c]; ok || c == "" {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (s *CatalogService) Browse(ctx context.Context, query, category string) (*BrowseResult, error) {
	query = strings.TrimSpace(query)
	category = strings.TrimSpace(category)

	products, err := s.store.Products().List(ctx, repository.ProductFilter{
		Status:   entity.StatusAccepted,
		Query:    query,
		Category: category,
	})
	if err != nil {
		return nil, err
	}
	views, err := withImages(ctx, s.store, products)
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &BrowseResult{Products: views, Categories: categories, Query: query, Category: category}, nil
}

func (s *CatalogService) ProductDetail(ctx context.Context, id Identity, productID int64) (*ProductDetail, error) {
	view, err := s.view(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !view.Product.Visible() && !id.IsAdmin() {
		return nil, ErrNotFound
	}

	seller, err := s.store.Users().GetByID(ctx, view.Product.SellerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	comments, err := s.store.Comments().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	authors := make(map[int64]*entity.User)
	threads := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		author, ok := authors[c.UserID]
		if !ok {
			author, err = s.store.Users().GetByID(ctx, c.UserID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			authors[c.UserID] = author
		}
		threads = append(threads, CommentView{Comment: c, Author: author})
	}

	return &ProductDetail{ProductView: *view, Seller: seller, Comments: threads}, nil
}

func (s *CatalogService) ListMine(ctx context.Context, id Identity) ([]*ProductView, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	products, err := s.store.Products().List(ctx, repository.ProductFilter{SellerID: id.UserID()})
	if err != nil {
		return nil, err
	}
	return withImages(ctx, s.store, products)
}

// withImages attaches images to products with a single lookup.
func withImages(ctx context.Context, store repository.Store, products []*entity.Product) ([]*ProductView, error) {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	images, err := store.Images().ListByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[int64][]*entity.ProductImage, len(products))
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}

	out := make([]*ProductView, 0, len(products))
	for _, p := range products {
		imgs := byProduct[p.ID]
		if imgs == nil {
			imgs = []*entity.ProductImage{}
		}
		out = append(out, &ProductView{Product: p, Images: imgs})
	}
	return out, nil
}

// discardFiles deletes stored files, logging failures.
func discardFiles(ctx context.Context, images ImageStore, log *zap.Logger, paths []string) {
	for _, path := range paths {
		if err := images.Delete(ctx, path); err != nil {
			log.Warn("failed to delete stored file", zap.String("path", path), zap.Error(err))
		}
	}
}
