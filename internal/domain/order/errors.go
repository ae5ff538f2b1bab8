package order

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	ErrUserRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "用户ID不能为空")

	ErrEmptyItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	ErrPaymentMethodRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "支付方式不能为空")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须为正整数")

	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "商品价格无效")

	ErrStatusRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "订单状态不能为空")

	ErrUnknownStatus = apperrors.New(apperrors.ErrCodeValidation, "未知的订单状态")

	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeValidation, "订单状态不允许此操作")
)
