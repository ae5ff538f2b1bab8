package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	apporder "github.com/xiebiao/storefront/internal/application/order"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/pkg/jwt"
)

// 需要从Config提取参数或附带cleanup的Provider

func provideDB(cfg *config.Config, lg *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, lg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config, lg *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, lg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideProductRepository MySQL商品仓储,按cache.enabled包一层Redis详情缓存
func provideProductRepository(db *gorm.DB, client *goredis.Client, cfg *config.Config, lg *zap.Logger) product.Repository {
	return redis.NewCachedProductRepository(mysql.NewProductRepository(db), client, cfg, lg)
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideStatusPolicy(cfg *config.Config) order.StatusPolicy {
	return order.NewStatusPolicy(cfg.Order.StrictStatusTransitions)
}

func provideOrderStats(repo order.Repository, cfg *config.Config) *apporder.OrderStatsUseCase {
	return apporder.NewOrderStatsUseCase(repo, cfg.Order.DefaultLookbackMonths)
}

// providePurchaseVerifier 订单仓储同时回答"是否购买过"
func providePurchaseVerifier(repo order.Repository) review.PurchaseVerifier {
	return repo
}

func provideOrderPlacer(uc *apporder.CreateOrderUseCase) appcart.OrderPlacer {
	return uc
}

// provideHealthHandler /health依赖检查:MySQL与Redis
func provideHealthHandler(db *gorm.DB, client *goredis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(map[string]handler.Pinger{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	})
}
