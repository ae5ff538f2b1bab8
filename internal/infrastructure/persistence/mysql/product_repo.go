package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/product"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建商品失败")
	}
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var model ProductModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindByIDs 批量查询,一次IN查询避免N+1
func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	var models []ProductModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询商品失败")
	}
	return toProductEntities(models), nil
}

func (r *productRepository) List(ctx context.Context) ([]*product.Product, error) {
	var models []ProductModel
	if err := dbFrom(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询商品列表失败")
	}
	return toProductEntities(models), nil
}

// Filter 价格闭区间与品牌筛选,条件为空时不参与
func (r *productRepository) Filter(ctx context.Context, f product.Filter) ([]*product.Product, error) {
	query := dbFrom(ctx, r.db).Model(&ProductModel{})
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Brand != "" {
		query = query.Where("brand = ?", f.Brand)
	}

	var models []ProductModel
	if err := query.Order("price ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "筛选商品失败")
	}
	return toProductEntities(models), nil
}

func (r *productRepository) TopReviewed(ctx context.Context, limit int) ([]*product.Product, error) {
	var models []ProductModel
	err := dbFrom(ctx, r.db).
		Order("review_count DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询热门商品失败")
	}
	return toProductEntities(models), nil
}

// Update 更新商品基本信息,review_count不在此处修改
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	result := dbFrom(ctx, r.db).Model(&ProductModel{ID: p.ID}).
		Select("name", "description", "category_id", "price", "stock", "brand", "updated_at").
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Delete(&ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) SetStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return product.ErrNegativeStock
	}
	result := dbFrom(ctx, r.db).Model(&ProductModel{}).
		Where("id = ?", id).
		Update("stock", stock)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, id)
	}
	return nil
}

// AdjustStock 原子增减库存
// UPDATE products SET stock = stock + ? WHERE id = ? AND stock + ? >= 0
func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	result := dbFrom(ctx, r.db).Model(&ProductModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 商品不存在或库存不足,再查一次确定原因
		if err := r.ensureExists(ctx, id); err != nil {
			return err
		}
		return product.ErrNegativeStock
	}
	return nil
}

// IncrReviewCount 评价计数增减,计数不会小于0
func (r *productRepository) IncrReviewCount(ctx context.Context, id string, delta int) error {
	result := dbFrom(ctx, r.db).Model(&ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("review_count", gorm.Expr("GREATEST(review_count + ?, 0)", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评价数失败")
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, id)
	}
	return nil
}

func (r *productRepository) ensureExists(ctx context.Context, id string) error {
	var count int64
	if err := dbFrom(ctx, r.db).Model(&ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "查询商品失败")
	}
	if count == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func toProductModel(p *product.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		Brand:       p.Brand,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CategoryID:  model.CategoryID,
		Price:       model.Price,
		Stock:       model.Stock,
		Brand:       model.Brand,
		ReviewIDs:   []string{},
		ReviewCount: model.ReviewCount,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toProductEntities(models []ProductModel) []*product.Product {
	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products
}
