package review

import (
	"context"
)

// PurchaseVerifier 购买记录查询,由订单仓储实现
type PurchaseVerifier interface {
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}

// Repository 评价仓储接口
type Repository interface {
	Create(ctx context.Context, r *Review) error

	// FindByID 不存在时返回ErrReviewNotFound
	FindByID(ctx context.Context, id string) (*Review, error)

	// List 全部评价,按创建时间倒序
	List(ctx context.Context) ([]*Review, error)

	// ListByProduct 商品的评价,按创建时间倒序
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)

	// IDsByProduct 商品ID到评价ID列表的映射
	IDsByProduct(ctx context.Context, productIDs []string) (map[string][]string, error)

	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id string) error

	// RatingStats 按商品分组的平均分与评价数,关联商品名称等信息,不排序
	RatingStats(ctx context.Context) ([]RatingStat, error)
}
