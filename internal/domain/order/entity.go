package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/pkg/idgen"
)

// Order 订单实体(聚合根)
// Items与Total必须在同一事务中写入,任何成功写入后Total == Σ Item.Subtotal
type Order struct {
	ID            string
	OrderNo       string // 展示用订单号
	UserID        string
	Items         []Item
	Total         decimal.Decimal
	PaymentMethod string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item 订单明细项
// Subtotal是下单(或重新定价)时的快照,商品改价不影响历史订单
type Item struct {
	ProductID string
	Quantity  int
	Subtotal  decimal.Decimal
}

// NewOrder 创建新订单(工厂方法),初始状态为pending
func NewOrder(userID, paymentMethod string, items []Item) *Order {
	now := time.Now()
	return &Order{
		ID:            idgen.New(),
		OrderNo:       GenerateOrderNo(),
		UserID:        userID,
		Items:         items,
		Total:         SumSubtotals(items),
		PaymentMethod: paymentMethod,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ReplaceItems 替换明细并重新计算总额
func (o *Order) ReplaceItems(items []Item) {
	o.Items = items
	o.Total = SumSubtotals(items)
	o.UpdatedAt = time.Now()
}

// ProductIDs 明细中的商品ID(去重,保持首次出现的顺序)
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID string) bool {
	return o.UserID == userID
}
