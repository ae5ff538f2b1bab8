package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/pkg/idgen"
)

// Product 商品实体(聚合根)
// 价格最多保留4位小数,订单小计在下单时按2位小数取整
type Product struct {
	ID          string
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal
	Stock       int
	Brand       string
	// ReviewIDs 由评价表派生,只在详情查询时填充
	ReviewIDs   []string
	ReviewCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter 商品筛选条件,零值字段不参与筛选
type Filter struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Brand    string
}

// StockChange 库存修改请求,Stock为绝对值,Adjust为增量,二者择一
type StockChange struct {
	Stock  *int
	Adjust *int
}

// NewProduct 创建商品(工厂方法)
func NewProduct(name, description, categoryID string, price decimal.Decimal, stock int, brand string) (*Product, error) {
	p := &Product{
		ID:          idgen.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		CategoryID:  categoryID,
		Price:       price,
		Stock:       stock,
		Brand:       brand,
		ReviewIDs:   []string{},
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (p *Product) validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.CategoryID == "" {
		return ErrCategoryRequired
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Patch 商品部分更新,nil表示不修改
type Patch struct {
	Name        *string
	Description *string
	CategoryID  *string
	Price       *decimal.Decimal
	Stock       *int
	Brand       *string
}

// Apply 应用部分更新,校验失败时商品保持原状
func (p *Product) Apply(patch Patch) error {
	next := *p
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.CategoryID != nil {
		next.CategoryID = *patch.CategoryID
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
	}
	if patch.Brand != nil {
		next.Brand = *patch.Brand
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*p = next
	return nil
}

// ResolveStock 计算库存修改后的结果
// Stock优先于Adjust;二者都为空返回ErrStockChangeRequired;结果为负返回ErrNegativeStock
func ResolveStock(current int, change StockChange) (int, error) {
	switch {
	case change.Stock != nil:
		if *change.Stock < 0 {
			return current, ErrNegativeStock
		}
		return *change.Stock, nil
	case change.Adjust != nil:
		next := current + *change.Adjust
		if next < 0 {
			return current, ErrNegativeStock
		}
		return next, nil
	default:
		return current, ErrStockChangeRequired
	}
}
