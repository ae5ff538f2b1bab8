package category

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

var (
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrDuplicateName 分类名重复,返回400
	ErrDuplicateName = apperrors.New(apperrors.ErrCodeCategoryDuplicate, "分类名称已存在")

	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空")
)
