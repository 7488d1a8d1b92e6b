package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// UserRepository is an in-memory implementation of UserRepository.
type UserRepository struct {
	s *state
}

var _ repository.UserRepository = (*UserRepository)(nil)

// conflicts reports whether another user already holds one of u's unique keys.
func (r *UserRepository) conflicts(u *entity.User) bool {
	for _, existing := range r.s.t.users {
		if existing.ID == u.ID {
			continue
		}
		if existing.ExternalID == u.ExternalID || existing.Email == u.Email || existing.Username == u.Username {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	userCopy := *user
	userCopy.ID = 0
	if r.conflicts(&userCopy) {
		return nil, repository.ErrDuplicate
	}
	userCopy.ID = r.s.id()
	if userCopy.CreatedAt.IsZero() {
		userCopy.CreatedAt = time.Now().UTC()
	}
	r.s.t.users[userCopy.ID] = &userCopy

	result := userCopy
	return &result, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.t.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *UserRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.t.users {
		if match(user) {
			copy := *user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ExternalID == externalID })
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.User, 0, len(r.s.t.users))
	for _, user := range r.s.t.users {
		copy := *user
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return newer(result[i].CreatedAt, result[i].ID, result[j].CreatedAt, result[j].ID)
	})
	return result, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.users[user.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	if r.conflicts(user) {
		return nil, repository.ErrDuplicate
	}

	copy := *user
	r.s.t.users[user.ID] = &copy
	result := copy
	return &result, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.t.users, id)
	return nil
}

// newer orders rows newest first, breaking timestamp ties by id.
func newer(at time.Time, id int64, otherAt time.Time, otherID int64) bool {
	if !at.Equal(otherAt) {
		return at.After(otherAt)
	}
	return id > otherID
}
