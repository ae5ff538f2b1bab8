package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 名称重复时返回ErrDuplicateName
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	// Delete 不级联删除商品
	Delete(ctx context.Context, id string) error
	// Stats 每个分类的商品数量,按商品数量倒序
	Stats(ctx context.Context) ([]Stat, error)
}
