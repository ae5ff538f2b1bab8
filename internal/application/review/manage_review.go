package review

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// UpdateReviewUseCase 修改评价(作者或管理员)
type UpdateReviewUseCase struct {
	reviewRepo review.Repository
}

func NewUpdateReviewUseCase(reviewRepo review.Repository) *UpdateReviewUseCase {
	return &UpdateReviewUseCase{reviewRepo: reviewRepo}
}

// UpdateReviewRequest nil字段不修改
type UpdateReviewRequest struct {
	Actor    user.Actor
	ReviewID string
	Rating   *int
	Comment  *string
}

func (uc *UpdateReviewUseCase) Execute(ctx context.Context, req UpdateReviewRequest) (*ReviewDTO, error) {
	r, err := loadOwnedReview(ctx, uc.reviewRepo, req.Actor, req.ReviewID)
	if err != nil {
		return nil, err
	}
	if req.Rating == nil && req.Comment == nil {
		return nil, apperrors.ErrInvalidParams.WithDetails("rating与comment至少提供一个")
	}
	if err := r.Edit(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := uc.reviewRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toReviewDTO(r, nil), nil
}

// DeleteReviewUseCase 删除评价(作者或管理员),同时减少商品评价数
type DeleteReviewUseCase struct {
	reviewRepo  review.Repository
	productRepo product.Repository
	tx          TxManager
	publisher   event.Publisher
	logger      *zap.Logger
}

func NewDeleteReviewUseCase(
	reviewRepo review.Repository,
	productRepo product.Repository,
	tx TxManager,
	publisher event.Publisher,
	logger *zap.Logger,
) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		tx:          tx,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *DeleteReviewUseCase) Execute(ctx context.Context, actor user.Actor, reviewID string) error {
	r, err := loadOwnedReview(ctx, uc.reviewRepo, actor, reviewID)
	if err != nil {
		return err
	}

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.reviewRepo.Delete(ctx, r.ID); err != nil {
			return err
		}
		// 商品已删除时没有计数需要维护
		if err := uc.productRepo.IncrReviewCount(ctx, r.ProductID, -1); err != nil && !errors.Is(err, product.ErrProductNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("评价已删除",
		zap.String("review_id", r.ID),
		zap.String("operator", actor.ID),
	)
	uc.publisher.Publish(ctx, event.New(event.ReviewDeleted, event.ReviewPayload{
		ReviewID:  r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
	}))
	return nil
}

func loadOwnedReview(ctx context.Context, repo review.Repository, actor user.Actor, id string) (*review.Review, error) {
	if !idgen.Valid(id) {
		return nil, apperrors.ErrInvalidID
	}
	r, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(r.UserID) {
		return nil, apperrors.ErrForbidden
	}
	return r, nil
}
