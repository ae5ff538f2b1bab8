package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/category"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// categoryRepository 分类仓储实现(MySQL)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

// Create 名称唯一由UNIQUE索引保证
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := toCategoryModel(c)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrDuplicateName
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	var model CategoryModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*category.Category, error) {
	if len(ids) == 0 {
		return []*category.Category{}, nil
	}
	var models []CategoryModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询分类失败")
	}
	return toCategoryEntities(models), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	if err := dbFrom(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	return toCategoryEntities(models), nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := dbFrom(ctx, r.db).Model(&CategoryModel{ID: c.ID}).
		Select("name", "description", "updated_at").
		Updates(toCategoryModel(c))
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return category.ErrDuplicateName
		}
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Delete 不级联删除分类下的商品
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Delete(&CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Stats 每个分类的商品数量(没有商品的分类计数为0)
func (r *categoryRepository) Stats(ctx context.Context) ([]category.Stat, error) {
	var rows []struct {
		CategoryID   string
		Name         string
		ProductCount int64
	}

	err := dbFrom(ctx, r.db).Table("categories AS c").
		Select("c.id AS category_id, c.name AS name, COUNT(p.id) AS product_count").
		Joins("LEFT JOIN products AS p ON p.category_id = c.id").
		Group("c.id, c.name").
		Order("product_count DESC, c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计分类失败")
	}

	stats := make([]category.Stat, len(rows))
	for i, row := range rows {
		stats[i] = category.Stat{CategoryID: row.CategoryID, Name: row.Name, ProductCount: row.ProductCount}
	}
	return stats, nil
}

func toCategoryModel(c *category.Category) *CategoryModel {
	return &CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toCategoryEntities(models []CategoryModel) []*category.Category {
	categories := make([]*category.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories
}
