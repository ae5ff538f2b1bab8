package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/response"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// RequestIDHeader 请求ID响应头,客户端传入时沿用
const RequestIDHeader = "X-Request-ID"

// SlowRequestThreshold 超过该耗时的请求记为warn
const SlowRequestThreshold = 3 * time.Second

// RequestID 为每个请求分配ID,写入Context和响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Logger 访问日志
// 记录方法、路由、状态码、耗时、客户端IP,不记录请求体和Token
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		level := zapcore.InfoLevel
		msg := "请求完成"
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case latency > SlowRequestThreshold:
			level = zapcore.WarnLevel
			msg = "慢请求"
		}
		logger.Check(level, msg).Write(fields...)
	}
}

// Recovery 捕获panic,记录堆栈并返回500
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("请求处理panic",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		response.Abort(c, apperrors.ErrInternal)
	})
}
