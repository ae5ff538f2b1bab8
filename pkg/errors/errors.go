package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 1. Code是业务错误码,HTTPStatus()按码段映射到HTTP状态码
// 2. Message是返回给客户端的错误提示
// 3. Details是可选的补充说明(如参数校验失败原因)
// 4. Err是内部错误,只记录日志,不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较,WithDetails派生的错误与原始错误视为同一种错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HTTPStatus 按错误码段映射HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code >= 40100 && e.Code <= 40103:
		return http.StatusUnauthorized
	case e.Code >= 40104 && e.Code <= 40199:
		return http.StatusForbidden
	case e.Code >= 40400 && e.Code <= 40499:
		return http.StatusNotFound
	case e.Code >= 40000 && e.Code <= 40099, e.Code >= 40900 && e.Code <= 40999:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WithDetails 返回带补充说明的副本(预定义错误是共享变量,不能直接修改)
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装系统错误(如数据库错误、网络错误)
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// - 4xxxx: 客户端错误
// - 5xxxx: 服务端错误

const (
	// 系统级错误码(50000-50099)
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证错误(40100-40103) → 401
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 账号或密码错误

	// 授权错误(40104-40199) → 403
	ErrCodeForbidden    = 40104 // 无权限
	ErrCodeNotPurchased = 40105 // 未购买商品,不能评价

	// 资源错误(40400-40499) → 404
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound     = 40401 // 用户不存在
	ErrCodeProductNotFound  = 40402 // 商品不存在
	ErrCodeOrderNotFound    = 40403 // 订单不存在
	ErrCodeCategoryNotFound = 40404 // 分类不存在
	ErrCodeReviewNotFound   = 40405 // 评价不存在

	// 业务规则错误(40000-40099) → 400
	ErrCodeBusinessError      = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock  = 40001 // 库存不足
	ErrCodeInvalidOrderStatus = 40002 // 订单状态非法
	ErrCodeEmailDuplicate     = 40003 // 邮箱已存在
	ErrCodeCategoryDuplicate  = 40004 // 分类名已存在
	ErrCodeWeakPassword       = 40005 // 密码强度不足
	ErrCodeEmptyCart          = 40006 // 购物车为空
	ErrCodeDuplicateEntry     = 40009 // 重复记录(通用)

	// 参数错误(40900-40999) → 400
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeInvalidID     = 40902 // ID格式错误
	ErrCodeValidation    = 40903 // 数据校验失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "邮箱或密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	// 业务规则
	ErrWeakPassword = New(ErrCodeWeakPassword, "密码强度不足(需8-20位,包含字母和数字)")
	ErrDuplicate    = New(ErrCodeDuplicateEntry, "记录已存在")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
	ErrInvalidID     = New(ErrCodeInvalidID, "ID格式错误")
	ErrValidation    = New(ErrCodeValidation, "数据校验失败")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError(如果不是AppError则包装成Internal错误)
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HasCode 判断err是否为指定错误码的AppError
func HasCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
