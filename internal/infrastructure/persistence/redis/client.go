package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

// NewClient 创建Redis客户端
// 1. 配置连接池参数(PoolSize、MinIdleConns)
// 2. 配置超时参数(DialTimeout、ReadTimeout、WriteTimeout)
// 3. 测试连接可用性
func NewClient(cfg *config.Config, lg *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout+cfg.Redis.ReadTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	lg.Info("Redis连接成功", zap.String("addr", cfg.Redis.Addr()), zap.Int("db", cfg.Redis.DB))
	return client, nil
}
