package usecase

import (
	"context"
	"strings"

	"github.com/wichananm65/buytouch-backend/internal/domain/entity"
	"github.com/wichananm65/buytouch-backend/internal/domain/repository"
)

// CommentUsecase exposes product discussion.
type CommentUsecase interface {
	AddComment(ctx context.Context, id Identity, productID int64, content string) (*entity.Comment, error)
	// DeleteComment returns the id of the product the comment belonged to.
	DeleteComment(ctx context.Context, id Identity, commentID int64) (int64, error)
}

type CommentService struct {
	store repository.Store
}

var _ CommentUsecase = (*CommentService)(nil)

func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{store: store}
}

func (s *CommentService) AddComment(ctx context.Context, id Identity, productID int64, content string) (*entity.Comment, error) {
	if err := Require(id, Authenticated()); err != nil {
		return nil, err
	}
	var out *entity.Comment
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Products().GetByID(ctx, productID); err != nil {
			return err
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return invalid("content", "Comment cannot be empty!")
		}
		var err error
		out, err = tx.Comments().Create(ctx, &entity.Comment{Content: content, UserID: id.UserID(), ProductID: productID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id Identity, commentID int64) (int64, error) {
	if err := Require(id, Authenticated()); err != nil {
		return 0, err
	}
	var productID int64
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		c, err := tx.Comments().GetByID(ctx, commentID)
		if err != nil {
			return err
		}
		if err := Require(id, Owner(c.UserID), Admin()); err != nil {
			return err
		}
		productID = c.ProductID
		return tx.Comments().Delete(ctx, c.ID)
	})
	if err != nil {
		return 0, err
	}
	return productID, nil
}
