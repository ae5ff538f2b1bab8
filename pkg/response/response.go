package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// Response 成功响应结构
// 格式:{"success": true, "data": ...}
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 失败响应结构
// 格式:{"error": "...", "details": "...", "code": 40900}
// Code是业务错误码,HTTP状态码由AppError.HTTPStatus()决定
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Success 成功响应(200)
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created 创建成功响应(201)
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// Error 错误响应(自动处理AppError)
// 用法:
//
//	result, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只记录日志,不返回给客户端
	if appErr.Err != nil {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}

	c.JSON(appErr.HTTPStatus(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
		Code:    appErr.Code,
	})
}

// Abort 错误响应并终止后续Handler(用于中间件)
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// BindError 参数绑定/校验失败,validator的错误信息放在details中
func BindError(c *gin.Context, err error) {
	Error(c, apperrors.ErrInvalidParams.WithDetails(err.Error()))
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(list, total, page, pageSize))
}
