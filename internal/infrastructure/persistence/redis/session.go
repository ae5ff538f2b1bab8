package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// SessionStore 会话存储
// 1. 用户登录会话 session:{user_id},TTL与Refresh Token一致
// 2. JWT黑名单 blacklist:{token},TTL与Access Token一致,过期自动清理
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID string) string {
	return "session:" + userID
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

// SaveSession 保存用户会话(登录时间、IP等),HSET与EXPIRE在同一个事务管道中执行
func (s *SessionStore) SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, data)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "保存会话失败")
	}
	return nil
}

// GetSession 获取用户会话,不存在时返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID string) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取会话失败")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除用户会话(登出、删除用户)
func (s *SessionStore) DeleteSession(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除会话失败")
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单(登出、强制下线)
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "添加Token到黑名单失败")
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}
	return exists > 0, nil
}
