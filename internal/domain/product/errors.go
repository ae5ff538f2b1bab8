package product

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 商品领域错误定义
var (
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称不能为空")

	ErrCategoryRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "商品分类不能为空")

	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeValidation, "价格不能为负数")

	// ErrNegativeStock 库存修改结果为负,库存保持不变
	ErrNegativeStock = apperrors.New(apperrors.ErrCodeValidation, "库存不能为负数")

	ErrStockChangeRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "stock与adjust至少提供一个")
)

// NotFound 带商品ID的不存在错误
func NotFound(id string) error {
	return ErrProductNotFound.WithDetails("product_id=" + id)
}
