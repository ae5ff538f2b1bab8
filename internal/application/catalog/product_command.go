package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/category"
	"github.com/xiebiao/storefront/internal/domain/product"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// CreateProductUseCase 创建商品(管理员)
type CreateProductUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
}

// NewCreateProductUseCase 创建用例
func NewCreateProductUseCase(productRepo product.Repository, categoryRepo category.Repository) *CreateProductUseCase {
	return &CreateProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal
	Stock       int
	Brand       string
}

// Execute 执行创建
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	// 1. 分类必须存在
	c, err := findCategory(ctx, uc.categoryRepo, req.CategoryID)
	if err != nil {
		return nil, err
	}

	// 2. 领域校验(名称、价格、库存)
	p, err := product.NewProduct(req.Name, req.Description, req.CategoryID, req.Price, req.Stock, req.Brand)
	if err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductDTO(p, c), nil
}

// UpdateProductUseCase 更新商品(管理员),字段为nil表示不修改
type UpdateProductUseCase struct {
	productRepo  product.Repository
	categoryRepo category.Repository
}

// NewUpdateProductUseCase 创建用例
func NewUpdateProductUseCase(productRepo product.Repository, categoryRepo category.Repository) *UpdateProductUseCase {
	return &UpdateProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	ID    string
	Patch product.Patch
}

// Execute 执行更新
func (uc *UpdateProductUseCase) Execute(ctx context.Context, req UpdateProductRequest) (*ProductDTO, error) {
	if !idgen.Valid(req.ID) {
		return nil, apperrors.ErrInvalidID
	}
	p, err := uc.productRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Patch.CategoryID != nil && *req.Patch.CategoryID != p.CategoryID {
		if _, err := findCategory(ctx, uc.categoryRepo, *req.Patch.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := p.Apply(req.Patch); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	c, err := uc.categoryRepo.FindByID(ctx, p.CategoryID)
	if err != nil && !apperrors.HasCode(err, apperrors.ErrCodeCategoryNotFound) {
		return nil, err
	}
	return toProductDTO(p, c), nil
}

// DeleteProductUseCase 删除商品(管理员)
type DeleteProductUseCase struct {
	productRepo product.Repository
}

// NewDeleteProductUseCase 创建用例
func NewDeleteProductUseCase(productRepo product.Repository) *DeleteProductUseCase {
	return &DeleteProductUseCase{productRepo: productRepo}
}

// Execute 执行删除
func (uc *DeleteProductUseCase) Execute(ctx context.Context, id string) error {
	if !idgen.Valid(id) {
		return apperrors.ErrInvalidID
	}
	return uc.productRepo.Delete(ctx, id)
}

// UpdateStockUseCase 修改库存(管理员)
// stock设置绝对值,adjust增减;结果为负时返回校验错误且库存不变
type UpdateStockUseCase struct {
	productRepo product.Repository
}

// NewUpdateStockUseCase 创建用例
func NewUpdateStockUseCase(productRepo product.Repository) *UpdateStockUseCase {
	return &UpdateStockUseCase{productRepo: productRepo}
}

// UpdateStockRequest 库存修改请求
type UpdateStockRequest struct {
	ID     string
	Change product.StockChange
}

// UpdateStockResponse 库存修改结果
type UpdateStockResponse struct {
	ID    string `json:"id"`
	Stock int    `json:"stock"`
}

// Execute 执行修改
func (uc *UpdateStockUseCase) Execute(ctx context.Context, req UpdateStockRequest) (*UpdateStockResponse, error) {
	if !idgen.Valid(req.ID) {
		return nil, apperrors.ErrInvalidID
	}

	// 1. 读取当前库存,提前拒绝明显非法的修改
	p, err := uc.productRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	next, err := product.ResolveStock(p.Stock, req.Change)
	if err != nil {
		return nil, err
	}

	// 2. 写入:增量用带条件的原子UPDATE,并发修改下也不会出现负库存
	if req.Change.Stock != nil {
		err = uc.productRepo.SetStock(ctx, req.ID, next)
	} else {
		err = uc.productRepo.AdjustStock(ctx, req.ID, *req.Change.Adjust)
	}
	if err != nil {
		return nil, err
	}

	// 3. 返回最新库存
	updated, err := uc.productRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &UpdateStockResponse{ID: updated.ID, Stock: updated.Stock}, nil
}

func findCategory(ctx context.Context, repo category.Repository, id string) (*category.Category, error) {
	if id == "" {
		return nil, product.ErrCategoryRequired
	}
	if !idgen.Valid(id) {
		return nil, apperrors.ErrInvalidID.WithDetails("category_id=" + id)
	}
	return repo.FindByID(ctx, id)
}
