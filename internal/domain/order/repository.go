package order

import (
	"context"
	"time"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单(包含明细),需在事务中调用或由实现自行开启事务
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含明细),不存在时返回ErrOrderNotFound
	FindByID(ctx context.Context, id string) (*Order, error)

	// Update 更新订单,明细整体替换
	Update(ctx context.Context, order *Order) error

	// Delete 删除订单及明细
	Delete(ctx context.Context, id string) error

	// List 全部订单,按创建时间倒序
	List(ctx context.Context) ([]*Order, error)

	// ListByUserID 用户的订单,按创建时间倒序
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)

	// HasPurchased 是否存在该用户包含该商品的订单(不限状态)
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)

	// StatsByStatus 按状态分组统计(未排序)
	StatsByStatus(ctx context.Context) ([]StatusStat, error)

	// MonthlySales 统计since之后未取消订单的月度销售(未排序,Period未填充)
	MonthlySales(ctx context.Context, since time.Time) ([]MonthlySales, error)

	// Totals 未取消订单的销售额与订单数
	Totals(ctx context.Context) (Totals, error)
}
