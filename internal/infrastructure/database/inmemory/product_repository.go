package inmemory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// ProductRepository is an in-memory implementation of ProductRepository.
type ProductRepository struct {
	s *state
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.users[p.SellerID]; !ok {
		return nil, repository.ErrNotFound
	}
	pCopy := *p
	pCopy.ID = r.s.id()
	now := time.Now().UTC()
	if pCopy.CreatedAt.IsZero() {
		pCopy.CreatedAt = now
	}
	if pCopy.UpdatedAt.IsZero() {
		pCopy.UpdatedAt = pCopy.CreatedAt
	}
	r.s.t.products[pCopy.ID] = &pCopy

	result := pCopy
	return &result, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.t.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func matches(p *entity.Product, f repository.ProductFilter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.SellerID != 0 && p.SellerID != f.SellerID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.Product, 0)
	for _, p := range r.s.t.products {
		if !matches(p, filter) {
			continue
		}
		copy := *p
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return newer(result[i].CreatedAt, result[i].ID, result[j].CreatedAt, result[j].ID)
	})
	return result, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.products[p.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	r.s.t.products[p.ID] = &copy
	result := copy
	return &result, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.t.products, id)
	return nil
}

func (r *ProductRepository) Categories(ctx context.Context, status entity.Status) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range r.s.t.products {
		if p.Status != status || p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

// ImageRepository is an in-memory implementation of ImageRepository.
type ImageRepository struct {
	s *state
}

var _ repository.ImageRepository = (*ImageRepository)(nil)

func (r *ImageRepository) Create(ctx context.Context, img *entity.ProductImage) (*entity.ProductImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.products[img.ProductID]; !ok {
		return nil, repository.ErrNotFound
	}
	imgCopy := *img
	imgCopy.ID = r.s.id()
	r.s.t.images[imgCopy.ID] = &imgCopy

	result := imgCopy
	return &result, nil
}

func (r *ImageRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.ProductImage, 0)
	for _, img := range r.s.t.images {
		if img.ProductID == productID {
			copy := *img
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ImageRepository) ListByProducts(ctx context.Context, productIDs []int64) ([]*entity.ProductImage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := make(map[int64]struct{}, len(productIDs))
	for _, id := range productIDs {
		want[id] = struct{}{}
	}
	out := make([]*entity.ProductImage, 0)
	for _, img := range r.s.t.images {
		if _, ok := want[img.ProductID]; ok {
			copy := *img
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.images[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.t.images, id)
	return nil
}
