package product

import (
	"context"
)

// Repository 商品仓储接口
type Repository interface {
	Create(ctx context.Context, p *Product) error

	// FindByID 不存在时返回ErrProductNotFound
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs 批量查询,不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)

	List(ctx context.Context) ([]*Product, error)

	// Filter 价格区间(闭区间)与品牌筛选
	Filter(ctx context.Context, f Filter) ([]*Product, error)

	// TopReviewed 按评价数倒序
	TopReviewed(ctx context.Context, limit int) ([]*Product, error)

	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error

	// SetStock 设置库存绝对值
	SetStock(ctx context.Context, id string, stock int) error

	// AdjustStock 原子增减库存,结果为负时返回ErrNegativeStock且不修改
	AdjustStock(ctx context.Context, id string, delta int) error

	// IncrReviewCount 增减评价计数,需在评价写入的同一事务中调用
	IncrReviewCount(ctx context.Context, id string, delta int) error
}
