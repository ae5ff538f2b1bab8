package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/category"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// ProductQuery 商品查询用例(列表、详情、筛选、热门)
// 分类信息与评价ID通过批量查询附加,不依赖ORM跨聚合预加载
type ProductQuery struct {
	productRepo  product.Repository
	categoryRepo category.Repository
	reviewRepo   review.Repository
}

// NewProductQuery 创建商品查询用例
func NewProductQuery(
	productRepo product.Repository,
	categoryRepo category.Repository,
	reviewRepo review.Repository,
) *ProductQuery {
	return &ProductQuery{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
	}
}

// List 全部商品(附带分类)
func (q *ProductQuery) List(ctx context.Context) ([]*ProductDTO, error) {
	products, err := q.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return q.project(ctx, products)
}

// Get 商品详情(附带分类与评价ID列表)
func (q *ProductQuery) Get(ctx context.Context, id string) (*ProductDTO, error) {
	if !idgen.Valid(id) {
		return nil, apperrors.ErrInvalidID
	}
	p, err := q.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dtos, err := q.project(ctx, []*product.Product{p})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

// FilterRequest 筛选条件,零值不参与
type FilterRequest struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Brand    string
}

// Filter 按价格区间与品牌筛选
func (q *ProductQuery) Filter(ctx context.Context, req FilterRequest) ([]*ProductDTO, error) {
	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return nil, apperrors.ErrInvalidParams.WithDetails("min_price不能大于max_price")
	}

	products, err := q.productRepo.Filter(ctx, product.Filter{
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Brand:    req.Brand,
	})
	if err != nil {
		return nil, err
	}
	return q.project(ctx, products)
}

// Top 评价数最多的商品,limit规则与评分排行一致(默认10,最大100)
func (q *ProductQuery) Top(ctx context.Context, limit int) ([]*ProductDTO, error) {
	products, err := q.productRepo.TopReviewed(ctx, review.NormalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return q.project(ctx, products)
}

// project 批量附加分类与评价ID
// 1. SELECT * FROM categories WHERE id IN (...)
// 2. SELECT id, product_id FROM reviews WHERE product_id IN (...)
func (q *ProductQuery) project(ctx context.Context, products []*product.Product) ([]*ProductDTO, error) {
	if len(products) == 0 {
		return []*ProductDTO{}, nil
	}

	categoryIDs := make([]string, 0, len(products))
	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		categoryIDs = append(categoryIDs, p.CategoryID)
		productIDs = append(productIDs, p.ID)
	}

	categories, err := q.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryMap := make(map[string]*category.Category, len(categories))
	for _, c := range categories {
		categoryMap[c.ID] = c
	}

	reviewIDs, err := q.reviewRepo.IDsByProduct(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ProductDTO, len(products))
	for i, p := range products {
		p.ReviewIDs = reviewIDs[p.ID]
		dtos[i] = toProductDTO(p, categoryMap[p.CategoryID])
	}
	return dtos, nil
}
