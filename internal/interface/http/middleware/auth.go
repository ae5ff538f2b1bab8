package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/jwt"
	"github.com/xiebiao/storefront/pkg/response"
)

// Context中的键
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
	ctxToken  = "access_token"
)

// TokenBlacklist 已登出Token的黑名单
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token有效性
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 格式:Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Abort(c, apperrors.ErrInvalidToken.WithDetails("Token格式错误"))
			return
		}
		tokenString := parts[1]

		// 用户已登出或Token被强制失效
		isBlacklisted, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Abort(c, apperrors.Wrap(err, "验证Token失败"))
			return
		}
		if isBlacklisted {
			response.Abort(c, apperrors.ErrInvalidToken.WithDetails("Token已失效,请重新登录"))
			return
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Abort(c, err) // ErrTokenExpired、ErrInvalidToken
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxToken, tokenString)
		c.Next()
	}
}

// RequireAdmin 要求管理员角色,必须放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != string(user.RoleAdmin) {
			response.Abort(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// GetUserID 当前登录用户ID,未登录时为空
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetEmail 当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// GetRole 当前登录用户角色
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// GetToken 当前请求的Access Token(登出时加入黑名单)
func GetToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}

// Actor 当前操作者,供应用层做本人/管理员校验
func Actor(c *gin.Context) user.Actor {
	return user.Actor{ID: GetUserID(c), Role: user.Role(GetRole(c))}
}
