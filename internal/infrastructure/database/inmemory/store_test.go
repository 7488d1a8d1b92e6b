package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

func seedSeller(t *testing.T, st *Store) *entity.User {
	t.Helper()
	u, err := st.Users().Create(context.Background(), &entity.User{
		ExternalID: "g-1", Email: "seller@example.com", Username: "seller",
	})
	require.NoError(t, err)
	return u
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	seller := seedSeller(t, st)

	boom := errors.New("boom")
	err := st.InTx(ctx, func(tx repository.Store) error {
		p, err := tx.Products().Create(ctx, &entity.Product{Name: "Phone", SellerID: seller.ID, Price: decimal.NewFromInt(5)})
		require.NoError(t, err)
		_, err = tx.Images().Create(ctx, &entity.ProductImage{ProductID: p.ID, Path: "uploads/a.png"})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	products, err := st.Products().List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestInTxNestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	seller := seedSeller(t, st)

	err := st.InTx(ctx, func(tx repository.Store) error {
		if err := tx.InTx(ctx, func(inner repository.Store) error {
			_, err := inner.Products().Create(ctx, &entity.Product{Name: "Inner", SellerID: seller.ID})
			return err
		}); err != nil {
			return err
		}
		return errors.New("outer failed")
	})
	require.Error(t, err)

	products, _ := st.Products().List(ctx, repository.ProductFilter{})
	assert.Empty(t, products)
}

func TestUserUniqueKeys(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	seedSeller(t, st)

	_, err := st.Users().Create(ctx, &entity.User{ExternalID: "g-2", Email: "other@example.com", Username: "seller"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = st.Users().GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductListFilters(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	seller := seedSeller(t, st)

	products := st.Products()
	_, _ = products.Create(ctx, &entity.Product{Name: "iPhone", Brand: "Apple", Category: "Apple", SellerID: seller.ID, Status: entity.StatusAccepted})
	_, _ = products.Create(ctx, &entity.Product{Name: "Pixel", Brand: "Google", Category: "Android", SellerID: seller.ID, Status: entity.StatusAccepted})
	_, _ = products.Create(ctx, &entity.Product{Name: "Drone", Category: "Drones", SellerID: seller.ID, Status: entity.StatusPending})

	got, err := products.List(ctx, repository.ProductFilter{Status: entity.StatusAccepted, Query: "APP"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "iPhone", got[0].Name)

	all, err := products.List(ctx, repository.ProductFilter{SellerID: seller.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Drone", all[0].Name, "newest first")

	cats, err := products.Categories(ctx, entity.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, []string{"Android", "Apple"}, cats)
}
