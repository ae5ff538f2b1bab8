package order

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// LineRequest 下单明细请求
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Subtotal 小计 = round(单价 × 数量, 2),四舍五入(远离零)
func Subtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// SumSubtotals 汇总明细小计
func SumSubtotals(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// ValidateLines 校验明细请求:非空、商品ID合法、数量为正
func ValidateLines(lines []LineRequest) error {
	if len(lines) == 0 {
		return ErrEmptyItems
	}
	for _, line := range lines {
		if !idgen.Valid(line.ProductID) {
			return apperrors.ErrInvalidID.WithDetails("product_id=" + line.ProductID)
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// LineProductIDs 明细请求中的商品ID(去重)
func LineProductIDs(lines []LineRequest) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

// PriceItems 按当前商品价格为明细定价
// prices为商品ID到单价的映射;任一商品不存在则整体失败,错误信息包含商品ID
func PriceItems(lines []LineRequest, prices map[string]decimal.Decimal) ([]Item, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		price, ok := prices[line.ProductID]
		if !ok {
			return nil, apperrors.Newf(apperrors.ErrCodeProductNotFound, "商品不存在: %s", line.ProductID)
		}
		if price.IsNegative() {
			return nil, ErrInvalidPrice.WithDetails("product_id=" + line.ProductID)
		}
		items = append(items, Item{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Subtotal:  Subtotal(price, line.Quantity),
		})
	}
	return items, nil
}
