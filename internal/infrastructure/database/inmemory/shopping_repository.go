package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// CartRepository is an in-memory implementation of CartRepository.
type CartRepository struct {
	s *state
}

var _ repository.CartRepository = (*CartRepository)(nil)

func (r *CartRepository) Create(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkRefs(item.UserID, item.ProductID); err != nil {
		return nil, err
	}
	itemCopy := *item
	itemCopy.ID = r.s.id()
	if itemCopy.CreatedAt.IsZero() {
		itemCopy.CreatedAt = time.Now().UTC()
	}
	r.s.t.carts[itemCopy.ID] = &itemCopy

	result := itemCopy
	return &result, nil
}

func (r *CartRepository) GetByID(ctx context.Context, id int64) (*entity.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.t.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *item
	return &copy, nil
}

func (r *CartRepository) Find(ctx context.Context, userID, productID int64) (*entity.CartItem, error) {
	items, _ := r.ListByUser(ctx, userID)
	for _, item := range items {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.CartItem, 0)
	for _, item := range r.s.t.carts {
		if item.UserID == userID {
			copy := *item
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CartRepository) Update(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.carts[item.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	copy := *item
	r.s.t.carts[item.ID] = &copy
	result := copy
	return &result, nil
}

func (r *CartRepository) Delete(ctx context.Context, ids ...int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		delete(r.s.t.carts, id)
	}
	return nil
}

func (r *CartRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, item := range r.s.t.carts {
		if item.ProductID == productID {
			delete(r.s.t.carts, id)
		}
	}
	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, item := range r.s.t.carts {
		if item.UserID == userID {
			delete(r.s.t.carts, id)
		}
	}
	return nil
}

// FavoriteRepository is an in-memory implementation of FavoriteRepository.
type FavoriteRepository struct {
	s *state
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)

func (r *FavoriteRepository) Create(ctx context.Context, fav *entity.Favorite) (*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkRefs(fav.UserID, fav.ProductID); err != nil {
		return nil, err
	}
	favCopy := *fav
	favCopy.ID = r.s.id()
	if favCopy.CreatedAt.IsZero() {
		favCopy.CreatedAt = time.Now().UTC()
	}
	r.s.t.favorites[favCopy.ID] = &favCopy

	result := favCopy
	return &result, nil
}

func (r *FavoriteRepository) GetByID(ctx context.Context, id int64) (*entity.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	fav, ok := r.s.t.favorites[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *fav
	return &copy, nil
}

func (r *FavoriteRepository) Find(ctx context.Context, userID, productID int64) (*entity.Favorite, error) {
	favs, _ := r.ListByUser(ctx, userID)
	for _, fav := range favs {
		if fav.ProductID == productID {
			return fav, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Favorite, 0)
	for _, fav := range r.s.t.favorites {
		if fav.UserID == userID {
			copy := *fav
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, ids ...int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		delete(r.s.t.favorites, id)
	}
	return nil
}

func (r *FavoriteRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, fav := range r.s.t.favorites {
		if fav.ProductID == productID {
			delete(r.s.t.favorites, id)
		}
	}
	return nil
}

func (r *FavoriteRepository) DeleteByUser(ctx context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, fav := range r.s.t.favorites {
		if fav.UserID == userID {
			delete(r.s.t.favorites, id)
		}
	}
	return nil
}

// CommentRepository is an in-memory implementation of CommentRepository.
type CommentRepository struct {
	s *state
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkRefs(c.UserID, c.ProductID); err != nil {
		return nil, err
	}
	cCopy := *c
	cCopy.ID = r.s.id()
	if cCopy.CreatedAt.IsZero() {
		cCopy.CreatedAt = time.Now().UTC()
	}
	r.s.t.comments[cCopy.ID] = &cCopy

	result := cCopy
	return &result, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.t.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *CommentRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Comment, 0)
	for _, c := range r.s.t.comments {
		if c.ProductID == productID {
			copy := *c
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[j].CreatedAt, out[j].ID, out[i].CreatedAt, out[i].ID)
	})
	return out, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.t.comments, id)
	return nil
}

func (r *CommentRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.t.comments {
		if c.ProductID == productID {
			delete(r.s.t.comments, id)
		}
	}
	return nil
}

func (r *CommentRepository) DeleteByUser(ctx context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.t.comments {
		if c.UserID == userID {
			delete(r.s.t.comments, id)
		}
	}
	return nil
}

// checkRefs mirrors the foreign keys of the relational schema. Callers hold mu.
func (s *state) checkRefs(userID, productID int64) error {
	if _, ok := s.t.users[userID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.t.products[productID]; !ok {
		return repository.ErrNotFound
	}
	return nil
}
