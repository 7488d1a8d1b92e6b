package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	f.user(t, "taken")
	me := f.user(t, "me")

	_, err := f.users.UpdateProfile(f.ctx, me, UpdateProfileInput{Username: "  "})
	assert.EqualError(t, err, "Username cannot be empty.")
	_, err = f.users.UpdateProfile(f.ctx, me, UpdateProfileInput{Username: "taken"})
	assert.EqualError(t, err, "Username already taken. Please choose another one.")

	avatar := uploads("me.png")[0]
	u, err := f.users.UpdateProfile(f.ctx, me, UpdateProfileInput{Username: " renamed ", Phone: "0812345678", Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "renamed", u.Username)
	assert.Equal(t, "0812345678", u.Phone)
	assert.Equal(t, "uploads/me.png", u.Avatar)
	assert.Empty(t, f.images.deleted, "default avatar is kept")

	next := uploads("me2.jpg")[0]
	u, err = f.users.UpdateProfile(f.ctx, me, UpdateProfileInput{Username: "renamed", Avatar: &next})
	require.NoError(t, err)
	assert.Equal(t, "uploads/me2.jpg", u.Avatar)
	assert.Equal(t, []string{"uploads/me.png"}, f.images.deleted)
}

func TestUpdateProfile_RemoteAvatarKept(t *testing.T) {
	f := newFixture(t)
	u, err := f.store.Users().Create(f.ctx, &entity.User{
		ExternalID: "g", Email: "g@example.com", Username: "g", Avatar: "https://lh3.example/pic",
	})
	require.NoError(t, err)

	avatar := uploads("new.png")[0]
	_, err = f.users.UpdateProfile(f.ctx, Identity{User: u}, UpdateProfileInput{Username: "g", Avatar: &avatar})
	require.NoError(t, err)
	assert.Empty(t, f.images.deleted)
}

func TestAdminDashboard(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, "seller")
	admin := f.admin(t)
	f.product(t, seller, "phone", "1", entity.StatusAccepted)
	f.product(t, seller, "tablet", "1", entity.StatusPending)

	_, err := f.users.AdminDashboard(f.ctx, seller)
	assert.ErrorIs(t, err, ErrForbidden)

	d, err := f.users.AdminDashboard(f.ctx, admin)
	require.NoError(t, err)
	require.Len(t, d.Pending, 1)
	assert.Equal(t, "tablet", d.Pending[0].Product.Name)
	assert.Len(t, d.Products, 2)
	assert.Len(t, d.Users, 2)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, "seller")
	buyer := f.user(t, "buyer")
	admin := f.admin(t)
	mine := f.product(t, seller, "phone", "1", entity.StatusAccepted)
	theirs := f.product(t, buyer, "bike", "1", entity.StatusAccepted)

	_, err := f.shopping.AddToCart(f.ctx, buyer, mine.Product.ID)
	require.NoError(t, err)
	_, err = f.shopping.AddToCart(f.ctx, seller, theirs.Product.ID)
	require.NoError(t, err)
	_, _, err = f.shopping.AddFavorite(f.ctx, seller, theirs.Product.ID)
	require.NoError(t, err)
	_, err = f.comments.AddComment(f.ctx, seller, theirs.Product.ID, "hi")
	require.NoError(t, err)

	_, err = f.users.DeleteUser(f.ctx, buyer, seller.UserID())
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.users.DeleteUser(f.ctx, admin, admin.UserID())
	assert.ErrorIs(t, err, ErrAdminAccount)

	_, err = f.users.DeleteUser(f.ctx, admin, seller.UserID())
	require.NoError(t, err)

	_, err = f.store.Users().GetByID(f.ctx, seller.UserID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.store.Products().GetByID(f.ctx, mine.Product.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	buyerCart, _ := f.store.Carts().ListByUser(f.ctx, buyer.UserID())
	assert.Empty(t, buyerCart)
	sellerCart, _ := f.store.Carts().ListByUser(f.ctx, seller.UserID())
	assert.Empty(t, sellerCart)
	comments, _ := f.store.Comments().ListByProduct(f.ctx, theirs.Product.ID)
	assert.Empty(t, comments)
	assert.ElementsMatch(t, []string{mine.Images[0].Path, mine.Images[1].Path}, f.images.deleted)

	_, err = f.store.Products().GetByID(f.ctx, theirs.Product.ID)
	assert.NoError(t, err, "other sellers' products survive")
}
