package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/pkg/metrics"
)

const productCacheName = "product"

// ProductCache 商品详情缓存(Cache-Aside)
// 1. FindByID先读缓存,未命中再查数据库并回填
// 2. 任何写操作成功后删除缓存,下次读取重新加载
// 3. Redis故障时降级为直接查询数据库
// 列表、筛选与批量查询不走缓存,订单定价始终读取数据库中的价格
type ProductCache struct {
	product.Repository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProductRepository 按配置决定是否在MySQL仓储外包一层缓存
func NewCachedProductRepository(inner product.Repository, client *redis.Client, cfg *config.Config, logger *zap.Logger) product.Repository {
	if !cfg.Cache.Enabled {
		return inner
	}
	return &ProductCache{Repository: inner, client: client, ttl: cfg.Cache.ProductTTL, logger: logger}
}

func productKey(id string) string {
	return "catalog:product:" + id
}

func (c *ProductCache) FindByID(ctx context.Context, id string) (*product.Product, error) {
	val, err := c.client.Get(ctx, productKey(id)).Bytes()
	switch {
	case err == nil:
		var p product.Product
		if err := json.Unmarshal(val, &p); err == nil {
			metrics.CacheRequestsTotal.WithLabelValues(productCacheName, "hit").Inc()
			return &p, nil
		}
		metrics.CacheRequestsTotal.WithLabelValues(productCacheName, "error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheRequestsTotal.WithLabelValues(productCacheName, "miss").Inc()
	default:
		metrics.CacheRequestsTotal.WithLabelValues(productCacheName, "error").Inc()
		c.logger.Warn("读取商品缓存失败", zap.String("product_id", id), zap.Error(err))
	}

	p, err := c.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, productKey(id), data, c.ttl).Err(); err != nil {
			c.logger.Warn("写入商品缓存失败", zap.String("product_id", id), zap.Error(err))
		}
	}
	return p, nil
}

func (c *ProductCache) Update(ctx context.Context, p *product.Product) error {
	if err := c.Repository.Update(ctx, p); err != nil {
		return err
	}
	c.evict(ctx, p.ID)
	return nil
}

func (c *ProductCache) Delete(ctx context.Context, id string) error {
	if err := c.Repository.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *ProductCache) SetStock(ctx context.Context, id string, stock int) error {
	if err := c.Repository.SetStock(ctx, id, stock); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *ProductCache) AdjustStock(ctx context.Context, id string, delta int) error {
	if err := c.Repository.AdjustStock(ctx, id, delta); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

// IncrReviewCount 可能在事务中调用,回滚时多删一次缓存不影响正确性
func (c *ProductCache) IncrReviewCount(ctx context.Context, id string, delta int) error {
	if err := c.Repository.IncrReviewCount(ctx, id, delta); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *ProductCache) evict(ctx context.Context, id string) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.logger.Warn("删除商品缓存失败", zap.String("product_id", id), zap.Error(err))
	}
}
