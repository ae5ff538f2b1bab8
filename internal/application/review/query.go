package review

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// ReviewQuery 评价查询与评分统计(公开接口)
type ReviewQuery struct {
	reviewRepo  review.Repository
	productRepo product.Repository
	userRepo    user.Repository
}

func NewReviewQuery(reviewRepo review.Repository, productRepo product.Repository, userRepo user.Repository) *ReviewQuery {
	return &ReviewQuery{reviewRepo: reviewRepo, productRepo: productRepo, userRepo: userRepo}
}

// List 全部评价,最新的在前
func (q *ReviewQuery) List(ctx context.Context) ([]*ReviewDTO, error) {
	reviews, err := q.reviewRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return withReviewers(ctx, q.userRepo, reviews)
}

func (q *ReviewQuery) Get(ctx context.Context, id string) (*ReviewDTO, error) {
	if !idgen.Valid(id) {
		return nil, apperrors.ErrInvalidID
	}
	r, err := q.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dtos, err := withReviewers(ctx, q.userRepo, []*review.Review{r})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

// ByProduct 商品的评价,最新的在前,附带作者姓名
func (q *ReviewQuery) ByProduct(ctx context.Context, productID string) ([]*ReviewDTO, error) {
	if !idgen.Valid(productID) {
		return nil, apperrors.ErrInvalidID
	}
	if _, err := q.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	reviews, err := q.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return withReviewers(ctx, q.userRepo, reviews)
}

// Averages 每个商品的平均分,保持存储返回的顺序
func (q *ReviewQuery) Averages(ctx context.Context) ([]AverageRatingDTO, error) {
	stats, err := q.reviewRepo.RatingStats(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]AverageRatingDTO, 0, len(stats))
	for _, s := range stats {
		dtos = append(dtos, AverageRatingDTO{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			AvgRating:   s.AvgRating,
			ReviewCount: s.ReviewCount,
		})
	}
	return dtos, nil
}

// Top 平均分最高的商品,limit<=0取10,最多100
func (q *ReviewQuery) Top(ctx context.Context, limit int) ([]TopRatedDTO, error) {
	stats, err := q.reviewRepo.RatingStats(ctx)
	if err != nil {
		return nil, err
	}
	ranked := review.TopRated(stats, limit)
	dtos := make([]TopRatedDTO, 0, len(ranked))
	for _, s := range ranked {
		dtos = append(dtos, TopRatedDTO{
			ProductID:   s.ProductID,
			Name:        s.ProductName,
			Brand:       s.Brand,
			Price:       s.Price,
			AvgRating:   s.AvgRating,
			ReviewCount: s.ReviewCount,
		})
	}
	return dtos, nil
}
