package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/user"
	"github.com/xiebiao/storefront/pkg/jwt"
)

// SessionStore 会话与Token黑名单存储,由Redis实现
type SessionStore interface {
	SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID string) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 用户登录用例
// 1. 验证邮箱密码
// 2. 生成JWT Token对(Claims携带角色)
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	logger       *zap.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
	logger *zap.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         *UserDTO `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间(秒)
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码(调用领域服务)
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 3. 保存会话,有效期与Refresh Token一致
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.jwtManager.RefreshTokenTTL()); err != nil {
		// 会话保存失败不影响登录
		uc.logger.Warn("保存会话失败", zap.String("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:         ToUserDTO(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, jwtManager: jwtManager}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID, accessToken string) error {
	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 2. Access Token加入黑名单,防止过期前继续使用
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenTTL())
}

// RefreshTokenUseCase 使用Refresh Token换取新的Access Token
type RefreshTokenUseCase struct {
	jwtManager *jwt.Manager
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(jwtManager *jwt.Manager) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager}
}

// RefreshTokenResponse 刷新响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Execute 执行刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshTokenResponse, error) {
	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}
