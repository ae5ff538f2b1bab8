package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/order"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// Order和OrderItem是聚合关系,必须一起保存;查询时Preload明细避免N+1
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单,GORM会通过foreignKey一并插入明细
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}
	return nil
}

// FindByID 根据ID查找订单
// 1. SELECT * FROM orders WHERE id = ?
// 2. SELECT * FROM order_items WHERE order_id IN (?) ORDER BY position
func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model OrderModel
	err := dbFrom(ctx, r.db).Preload("Items", orderedItems).First(&model, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// Update 更新订单头并整体替换明细
// 已在事务中时复用外层事务(GORM嵌套事务使用SAVEPOINT)
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderModel{ID: o.ID}).
			Select("total", "payment_method", "status", "updated_at").
			Updates(model)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "更新订单失败")
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}

		if err := tx.Where("order_id = ?", o.ID).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除订单明细失败")
		}
		if len(model.Items) == 0 {
			return nil
		}
		if err := tx.Create(&model.Items).Error; err != nil {
			return apperrors.Wrap(err, "保存订单明细失败")
		}
		return nil
	})
}

// Delete 删除订单及明细
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除订单明细失败")
		}
		result := tx.Delete(&OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除订单失败")
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
}

func (r *orderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel
	err := dbFrom(ctx, r.db).
		Preload("Items", orderedItems).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	var models []OrderModel
	err := dbFrom(ctx, r.db).
		Preload("Items", orderedItems).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户订单失败")
	}
	return toOrderEntities(models), nil
}

// HasPurchased 任意状态的订单中包含该商品即视为已购买
func (r *orderRepository) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Table("orders AS o").
		Joins("JOIN order_items AS oi ON oi.order_id = o.id").
		Where("o.user_id = ? AND oi.product_id = ?", userID, productID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询购买记录失败")
	}
	return count > 0, nil
}

func (r *orderRepository) StatsByStatus(ctx context.Context) ([]order.StatusStat, error) {
	var rows []struct {
		Status      string
		Count       int64
		TotalAmount decimal.Decimal
	}

	err := dbFrom(ctx, r.db).Model(&OrderModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total_amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按状态统计订单失败")
	}

	stats := make([]order.StatusStat, len(rows))
	for i, row := range rows {
		stats[i] = order.StatusStat{
			Status:      order.Status(row.Status),
			Count:       row.Count,
			TotalAmount: row.TotalAmount,
		}
	}
	return stats, nil
}

// MonthlySales 按年月分组,已取消订单不计入
func (r *orderRepository) MonthlySales(ctx context.Context, since time.Time) ([]order.MonthlySales, error) {
	var rows []struct {
		Year        int
		Month       int
		TotalSales  decimal.Decimal
		TotalOrders int64
	}

	err := dbFrom(ctx, r.db).Model(&OrderModel{}).
		Select("YEAR(created_at) AS year, MONTH(created_at) AS month, "+
			"COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS total_orders").
		Where("status <> ?", string(order.StatusCancelled)).
		Where("created_at >= ?", since).
		Group("YEAR(created_at), MONTH(created_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计月度销售失败")
	}

	sales := make([]order.MonthlySales, len(rows))
	for i, row := range rows {
		sales[i] = order.MonthlySales{
			Year:        row.Year,
			Month:       row.Month,
			TotalSales:  row.TotalSales,
			TotalOrders: row.TotalOrders,
		}
	}
	return sales, nil
}

func (r *orderRepository) Totals(ctx context.Context) (order.Totals, error) {
	var row struct {
		TotalSales  decimal.Decimal
		TotalOrders int64
	}

	err := dbFrom(ctx, r.db).Model(&OrderModel{}).
		Select("COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS total_orders").
		Where("status <> ?", string(order.StatusCancelled)).
		Scan(&row).Error
	if err != nil {
		return order.Totals{}, apperrors.Wrap(err, "统计销售总额失败")
	}
	return order.NewTotals(row.TotalSales, row.TotalOrders), nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			OrderID:   o.ID,
			Position:  i,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		}
	}

	return &OrderModel{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		UserID:        o.UserID,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.Item, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		}
	}

	return &order.Order{
		ID:            model.ID,
		OrderNo:       model.OrderNo,
		UserID:        model.UserID,
		Items:         items,
		Total:         model.Total,
		PaymentMethod: model.PaymentMethod,
		Status:        order.Status(model.Status),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}
