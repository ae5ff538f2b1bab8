package dto

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/product"
)

// CreateCategoryRequest 创建分类
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"数码"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateCategoryRequest 更新分类,nil字段不修改
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// CreateProductRequest 创建商品
// 价格为JSON数字或字符串,最多4位小数
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200" example:"机械键盘"`
	Description string           `json:"description" binding:"max=5000"`
	CategoryID  string           `json:"category_id" binding:"required" example:"5f0c1a2e-0000-4000-8000-000000000001"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"399.00"`
	Stock       int              `json:"stock" binding:"min=0" example:"100"`
	Brand       string           `json:"brand" binding:"max=100" example:"Cherry"`
}

// UpdateProductRequest 部分更新商品,nil字段不修改
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	CategoryID  *string          `json:"category_id"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Brand       *string          `json:"brand" binding:"omitempty,max=100"`
}

// ToPatch 转换为领域部分更新
func (r UpdateProductRequest) ToPatch() product.Patch {
	return product.Patch{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Stock:       r.Stock,
		Brand:       r.Brand,
	}
}

// UpdateStockRequest 库存修改,stock为绝对值,adjust为增量,同时提供时以stock为准
type UpdateStockRequest struct {
	Stock  *int `json:"stock" example:"50"`
	Adjust *int `json:"adjust" example:"-3"`
}

// ProductFilterQuery 商品筛选参数
type ProductFilterQuery struct {
	MinPrice string `form:"minPrice" example:"10"`
	MaxPrice string `form:"maxPrice" example:"500"`
	Brand    string `form:"brand" binding:"max=100" example:"Cherry"`
}

// LimitQuery 排行榜数量,<=0取默认值
type LimitQuery struct {
	Limit int `form:"limit" example:"10"`
}
