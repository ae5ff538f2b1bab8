package review

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/tracing"
)

const tracerName = "storefront/review"

// TxManager 事务管理,fn内使用传入的ctx访问仓储
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateReviewUseCase 发表评价
type CreateReviewUseCase struct {
	reviewRepo  review.Repository
	productRepo product.Repository
	verifier    review.PurchaseVerifier
	tx          TxManager
	publisher   event.Publisher
	logger      *zap.Logger
}

func NewCreateReviewUseCase(
	reviewRepo review.Repository,
	productRepo product.Repository,
	verifier review.PurchaseVerifier,
	tx TxManager,
	publisher event.Publisher,
	logger *zap.Logger,
) *CreateReviewUseCase {
	return &CreateReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		verifier:    verifier,
		tx:          tx,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateReviewRequest 发表评价请求,作者固定为当前登录用户
type CreateReviewRequest struct {
	Actor     user.Actor
	ProductID string
	Rating    int
	Comment   string
}

// Execute 执行发表评价
// 1. 校验评分与内容
// 2. 商品必须存在
// 3. 用户必须有包含该商品的订单(任意状态)
// 4. 写入评价并增加商品评价数(同一事务)
func (uc *CreateReviewUseCase) Execute(ctx context.Context, req CreateReviewRequest) (dto *ReviewDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateReview")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	span.SetAttributes(attribute.String("user_id", req.Actor.ID), attribute.String("product_id", req.ProductID))

	if !idgen.Valid(req.ProductID) {
		metrics.ReviewsRejectedTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidID.WithDetails("product_id=" + req.ProductID)
	}

	r, err := review.NewReview(req.Actor.ID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		metrics.ReviewsRejectedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if _, err := uc.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	purchased, err := uc.verifier.HasPurchased(ctx, req.Actor.ID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		metrics.ReviewsRejectedTotal.WithLabelValues("not_purchased").Inc()
		uc.logger.Info("未购买商品,拒绝评价",
			zap.String("user_id", req.Actor.ID),
			zap.String("product_id", req.ProductID),
		)
		return nil, review.ErrNotPurchased
	}

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.reviewRepo.Create(ctx, r); err != nil {
			return err
		}
		return uc.productRepo.IncrReviewCount(ctx, r.ProductID, 1)
	})
	if err != nil {
		return nil, err
	}
	metrics.ReviewsCreatedTotal.Inc()

	uc.publisher.Publish(ctx, event.New(event.ReviewCreated, event.ReviewPayload{
		ReviewID:  r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
	}))

	return toReviewDTO(r, nil), nil
}
