package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/response"
)

// CORS 跨域资源共享
// 1. 不带Origin的请求(同源、curl)直接放行
// 2. Origin不在允许列表中返回403
// 3. OPTIONS预检请求返回204,不进入业务路由
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	expose := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !cfg.Enabled || origin == "" {
			c.Next()
			return
		}

		allowOrigin := matchOrigin(cfg.AllowOrigins, origin)
		if allowOrigin == "" {
			response.Abort(c, apperrors.ErrForbidden.WithDetails("origin not allowed: "+origin))
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", headers)
		if expose != "" {
			h.Set("Access-Control-Expose-Headers", expose)
		}
		if cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if cfg.MaxAge > 0 {
			h.Set("Access-Control-Max-Age", maxAge)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// matchOrigin 返回应写入Allow-Origin的值,不匹配时返回空串
func matchOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}
