package review

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

var (
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")

	// ErrNotPurchased 没有包含该商品的订单,不能评价
	ErrNotPurchased = apperrors.New(apperrors.ErrCodeNotPurchased, "未购买该商品,不能评价")

	ErrInvalidRating = apperrors.New(apperrors.ErrCodeValidation, "评分必须为1-5的整数")

	ErrCommentTooLong = apperrors.New(apperrors.ErrCodeValidation, "评价内容不能超过1000个字符")
)
