package catalog

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/category"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// CategoryService 分类用例集合
// 分类逻辑很薄,不再拆成单独的UseCase结构
type CategoryService struct {
	categoryRepo category.Repository
}

// NewCategoryService 创建分类用例
func NewCategoryService(categoryRepo category.Repository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]*CategoryDTO, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = toCategoryDTO(c)
	}
	return dtos, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*CategoryDTO, error) {
	if !idgen.Valid(id) {
		return nil, apperrors.ErrInvalidID
	}
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(c), nil
}

// Create 名称重复时返回ErrDuplicateName(400)
func (s *CategoryService) Create(ctx context.Context, name, description string) (*CategoryDTO, error) {
	c, err := category.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryDTO(c), nil
}

func (s *CategoryService) Update(ctx context.Context, id string, name, description *string) (*CategoryDTO, error) {
	if !idgen.Valid(id) {
		return nil, apperrors.ErrInvalidID
	}
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(name, description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryDTO(c), nil
}

// Delete 不级联删除分类下的商品
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if !idgen.Valid(id) {
		return apperrors.ErrInvalidID
	}
	return s.categoryRepo.Delete(ctx, id)
}

// Stats 每个分类的商品数量
func (s *CategoryService) Stats(ctx context.Context) ([]CategoryStatDTO, error) {
	stats, err := s.categoryRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryStatDTO, len(stats))
	for i, st := range stats {
		dtos[i] = CategoryStatDTO{CategoryID: st.CategoryID, Name: st.Name, ProductCount: st.ProductCount}
	}
	return dtos, nil
}
