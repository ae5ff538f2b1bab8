package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"参数错误", ErrInvalidParams, http.StatusBadRequest},
		{"ID格式错误", ErrInvalidID, http.StatusBadRequest},
		{"校验失败", ErrValidation, http.StatusBadRequest},
		{"业务错误", New(ErrCodeInsufficientStock, "库存不足"), http.StatusBadRequest},
		{"未登录", ErrUnauthorized, http.StatusUnauthorized},
		{"密码错误", ErrInvalidPassword, http.StatusUnauthorized},
		{"无权限", ErrForbidden, http.StatusForbidden},
		{"未购买", New(ErrCodeNotPurchased, "未购买"), http.StatusForbidden},
		{"不存在", New(ErrCodeOrderNotFound, "订单不存在"), http.StatusNotFound},
		{"内部错误", ErrInternal, http.StatusInternalServerError},
		{"未知码", New(12345, "x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAppError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrValidation.WithDetails("rating must be 1-5")

	assert.Equal(t, "rating must be 1-5", detailed.Details)
	assert.Empty(t, ErrValidation.Details, "预定义错误不应被修改")
	assert.True(t, errors.Is(detailed, ErrValidation))
	assert.False(t, errors.Is(detailed, ErrInvalidParams))
}

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("外层: %w", ErrForbidden)
	assert.Same(t, ErrForbidden, GetAppError(wrapped))

	plain := errors.New("connection refused")
	appErr := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, plain)
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(ErrInvalidID, ErrCodeInvalidID))
	assert.False(t, HasCode(errors.New("x"), ErrCodeInvalidID))
}
