package dto

import "github.com/xiebiao/storefront/internal/domain/order"

// OrderItemRequest 订单明细
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"5f0c1a2e-0000-4000-8000-000000000002"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// CreateOrderRequest 下单请求,user_id只对管理员生效
type CreateOrderRequest struct {
	UserID        string             `json:"user_id"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" binding:"required,max=50" example:"credit_card"`
}

// UpdateOrderRequest 更新订单
// items非空时整体替换并按当前价格重新定价;status只允许管理员修改
type UpdateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"omitempty,dive"`
	PaymentMethod *string            `json:"payment_method" binding:"omitempty,max=50"`
	Status        *string            `json:"status"`
}

// UpdateOrderStatusRequest 修改订单状态
type UpdateOrderStatusRequest struct {
	Status string `json:"status" example:"paid"`
}

// StatsQuery 订单统计参数
type StatsQuery struct {
	Months int `form:"months" binding:"omitempty,min=1" example:"6"`
}

// ToLines 转换为领域明细请求
func ToLines(items []OrderItemRequest) []order.LineRequest {
	if len(items) == 0 {
		return nil
	}
	lines := make([]order.LineRequest, len(items))
	for i, item := range items {
		lines[i] = order.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}
