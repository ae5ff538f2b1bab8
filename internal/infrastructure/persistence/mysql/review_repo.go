package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/review"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// reviewRepository 评价仓储实现(MySQL)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	if err := dbFrom(ctx, r.db).Create(toReviewModel(rv)).Error; err != nil {
		return apperrors.Wrap(err, "创建评价失败")
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var model ReviewModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*review.Review, error) {
	var models []ReviewModel
	if err := dbFrom(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评价列表失败")
	}
	return toReviewEntities(models), nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]*review.Review, error) {
	var models []ReviewModel
	err := dbFrom(ctx, r.db).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品评价失败")
	}
	return toReviewEntities(models), nil
}

// IDsByProduct 一次查询取出多个商品的评价ID
func (r *reviewRepository) IDsByProduct(ctx context.Context, productIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ID        string
		ProductID string
	}
	err := dbFrom(ctx, r.db).Model(&ReviewModel{}).
		Select("id, product_id").
		Where("product_id IN ?", productIDs).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评价ID失败")
	}

	for _, row := range rows {
		result[row.ProductID] = append(result[row.ProductID], row.ID)
	}
	return result, nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	result := dbFrom(ctx, r.db).Model(&ReviewModel{ID: rv.ID}).
		Select("rating", "comment", "updated_at").
		Updates(toReviewModel(rv))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Delete(&ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// RatingStats 平均分在内存中取整排序,这里只做聚合
func (r *reviewRepository) RatingStats(ctx context.Context) ([]review.RatingStat, error) {
	var rows []struct {
		ProductID   string
		ProductName string
		Brand       string
		Price       decimal.Decimal
		AvgRating   float64
		ReviewCount int64
	}

	err := dbFrom(ctx, r.db).Table("reviews AS r").
		Select("r.product_id AS product_id, p.name AS product_name, p.brand AS brand, p.price AS price, " +
			"AVG(r.rating) AS avg_rating, COUNT(r.id) AS review_count").
		Joins("JOIN products AS p ON p.id = r.product_id").
		Group("r.product_id, p.name, p.brand, p.price").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计商品评分失败")
	}

	stats := make([]review.RatingStat, len(rows))
	for i, row := range rows {
		stats[i] = review.RatingStat{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Brand:       row.Brand,
			Price:       row.Price,
			AvgRating:   row.AvgRating,
			ReviewCount: row.ReviewCount,
		}
	}
	return stats, nil
}

func toReviewModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:        rv.ID,
		UserID:    rv.UserID,
		ProductID: rv.ProductID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}

func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		ProductID: model.ProductID,
		Rating:    model.Rating,
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toReviewEntities(models []ReviewModel) []*review.Review {
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews
}
