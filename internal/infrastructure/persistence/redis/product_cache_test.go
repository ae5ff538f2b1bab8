//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/application/fakes"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/pkg/idgen"
)

func TestProductCache(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	pen, err := product.NewProduct("Pen", "", idgen.New(), decimal.RequireFromString("19.99"), 5, "Acme")
	require.NoError(t, err)
	inner := fakes.NewProductRepo(pen)

	cfg := &config.Config{Cache: config.CacheConfig{Enabled: true, ProductTTL: time.Minute}}
	repo := NewCachedProductRepository(inner, client, cfg, zap.NewNop())

	t.Run("未命中后回填", func(t *testing.T) {
		got, err := repo.FindByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pen", got.Name)

		exists, err := client.Exists(ctx, productKey(pen.ID)).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("命中缓存保留金额精度", func(t *testing.T) {
		got, err := repo.FindByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("19.99").Equal(got.Price))
	})

	t.Run("写操作删除缓存", func(t *testing.T) {
		require.NoError(t, repo.AdjustStock(ctx, pen.ID, -2))

		exists, err := client.Exists(ctx, productKey(pen.ID)).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)

		got, err := repo.FindByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Stock)
	})

	t.Run("不存在的商品不缓存", func(t *testing.T) {
		missing := idgen.New()
		_, err := repo.FindByID(ctx, missing)
		assert.ErrorIs(t, err, product.ErrProductNotFound)

		exists, err := client.Exists(ctx, productKey(missing)).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("关闭缓存时直接返回原仓储", func(t *testing.T) {
		plain := NewCachedProductRepository(inner, client, &config.Config{}, zap.NewNop())
		assert.Same(t, inner, plain)
	})
}
