package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
)

// priceLines 按当前商品价格为明细定价
// 1. 校验明细(非空、ID格式、数量)
// 2. 一次IN查询取出全部商品
// 3. 任一商品不存在则整体失败
func priceLines(ctx context.Context, productRepo product.Repository, lines []order.LineRequest) ([]order.Item, error) {
	if err := order.ValidateLines(lines); err != nil {
		return nil, err
	}

	products, err := productRepo.FindByIDs(ctx, order.LineProductIDs(lines))
	if err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return order.PriceItems(lines, prices)
}
