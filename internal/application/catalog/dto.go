package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/category"
	"github.com/xiebiao/storefront/internal/domain/product"
)

// CategorySummary 商品详情中附带的分类信息
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductDTO 商品信息
type ProductDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  string           `json:"category_id"`
	Category    *CategorySummary `json:"category,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	Brand       string           `json:"brand"`
	ReviewIDs   []string         `json:"review_ids"`
	ReviewCount int              `json:"review_count"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CategoryDTO 分类信息
type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryStatDTO 分类商品数统计
type CategoryStatDTO struct {
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

func toProductDTO(p *product.Product, c *category.Category) *ProductDTO {
	reviewIDs := p.ReviewIDs
	if reviewIDs == nil {
		reviewIDs = []string{}
	}
	dto := &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		Brand:       p.Brand,
		ReviewIDs:   reviewIDs,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if c != nil {
		dto.Category = &CategorySummary{ID: c.ID, Name: c.Name}
	}
	return dto
}

func toCategoryDTO(c *category.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
