// Package handler HTTP处理器
//
// Handler只负责HTTP相关的事情:解析请求、调用应用层、返回响应,不包含业务逻辑。
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/response"
)

// bindJSON 绑定并校验请求体,失败时写入400响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BindError(c, err)
		return false
	}
	return true
}

// bindQuery 绑定并校验查询参数
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.BindError(c, err)
		return false
	}
	return true
}

// intParam 解析整数路径参数
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithDetails(name+"必须为整数"))
		return 0, false
	}
	return v, true
}
