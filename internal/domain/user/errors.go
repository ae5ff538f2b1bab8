package user

import (
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")

	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-50个字符")

	ErrInvalidRole = apperrors.New(apperrors.ErrCodeValidation, "无效的用户角色")

	ErrAddressLine1Required = apperrors.New(apperrors.ErrCodeInvalidParams, "地址line1不能为空")

	ErrAddressIndexOutOfRange = apperrors.New(apperrors.ErrCodeInvalidParams, "地址下标越界")
)
