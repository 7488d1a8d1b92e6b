package inmemory

import (
	"context"
	"maps"
	"sync"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

type tables struct {
	users     map[int64]*entity.User
	products  map[int64]*entity.Product
	images    map[int64]*entity.ProductImage
	carts     map[int64]*entity.CartItem
	favorites map[int64]*entity.Favorite
	comments  map[int64]*entity.Comment
	nextID    int64
}

// Rows are replaced on update, never mutated in place, so copying the maps
// is enough to capture a consistent snapshot.
func (t *tables) clone() tables {
	return tables{
		users:     maps.Clone(t.users),
		products:  maps.Clone(t.products),
		images:    maps.Clone(t.images),
		carts:     maps.Clone(t.carts),
		favorites: maps.Clone(t.favorites),
		comments:  maps.Clone(t.comments),
		nextID:    t.nextID,
	}
}

type state struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	t    tables
}

func (s *state) id() int64 {
	s.t.nextID++
	return s.t.nextID
}

// Store is an in-memory implementation of repository.Store. Transactions are
// serialized and roll back by restoring a snapshot taken when they began.
type Store struct {
	s    *state
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{s: &state{t: tables{
		users:     make(map[int64]*entity.User),
		products:  make(map[int64]*entity.Product),
		images:    make(map[int64]*entity.ProductImage),
		carts:     make(map[int64]*entity.CartItem),
		favorites: make(map[int64]*entity.Favorite),
		comments:  make(map[int64]*entity.Comment),
	}}}
}

func (st *Store) Users() repository.UserRepository         { return &UserRepository{s: st.s} }
func (st *Store) Products() repository.ProductRepository   { return &ProductRepository{s: st.s} }
func (st *Store) Images() repository.ImageRepository       { return &ImageRepository{s: st.s} }
func (st *Store) Carts() repository.CartRepository         { return &CartRepository{s: st.s} }
func (st *Store) Favorites() repository.FavoriteRepository { return &FavoriteRepository{s: st.s} }
func (st *Store) Comments() repository.CommentRepository   { return &CommentRepository{s: st.s} }

func (st *Store) InTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if st.inTx {
		return fn(st)
	}

	st.s.txMu.Lock()
	defer st.s.txMu.Unlock()

	st.s.mu.RLock()
	snapshot := st.s.t.clone()
	st.s.mu.RUnlock()

	if err := fn(&Store{s: st.s, inTx: true}); err != nil {
		st.s.mu.Lock()
		st.s.t = snapshot
		st.s.mu.Unlock()
		return err
	}
	return nil
}
