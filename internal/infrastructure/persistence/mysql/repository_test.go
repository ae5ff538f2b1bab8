//go:build integration

package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/category"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/domain/user"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

// startMySQL 启动一次性MySQL容器,并用migrations脚本建表
func startMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "root",
				"MYSQL_DATABASE":      "storefront",
			},
			// 初始化阶段会先以port: 0启动一次,等真正监听3306的日志
			WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Host:            host,
			Port:            port.Int(),
			User:            "root",
			Password:        "root",
			DBName:          "storefront",
			Charset:         "utf8mb4",
			ParseTime:       true,
			Loc:             "UTC",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
			Migrate:         config.MigrateSQL,
		},
	}
	db, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type seed struct {
	alice *user.User
	pen   *product.Product
	ink   *product.Product
}

func seedCatalog(t *testing.T, db *gorm.DB) seed {
	t.Helper()
	ctx := context.Background()

	alice := user.NewUser("Alice", "alice@example.com", "hash", "", user.RoleCustomer)
	require.NoError(t, NewUserRepository(db).Create(ctx, alice))

	c, err := category.NewCategory("文具", "")
	require.NoError(t, err)
	require.NoError(t, NewCategoryRepository(db).Create(ctx, c))

	products := NewProductRepository(db)
	pen, err := product.NewProduct("Pen", "", c.ID, decimal.RequireFromString("19.99"), 5, "Acme")
	require.NoError(t, err)
	ink, err := product.NewProduct("Ink", "", c.ID, decimal.RequireFromString("10.01"), 5, "Acme")
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, pen))
	require.NoError(t, products.Create(ctx, ink))

	return seed{alice: alice, pen: pen, ink: ink}
}

func TestRepositories(t *testing.T) {
	db := startMySQL(t)
	s := seedCatalog(t, db)
	ctx := context.Background()

	users := NewUserRepository(db)
	products := NewProductRepository(db)
	orders := NewOrderRepository(db)
	reviews := NewReviewRepository(db)
	tx := NewTxManager(db)

	t.Run("邮箱唯一", func(t *testing.T) {
		dup := user.NewUser("Alice2", "alice@example.com", "hash", "", user.RoleCustomer)
		err := users.Create(ctx, dup)
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)

		found, err := users.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, s.alice.ID, found.ID)
	})

	t.Run("库存原子调整", func(t *testing.T) {
		require.NoError(t, products.AdjustStock(ctx, s.pen.ID, -3))
		assert.ErrorIs(t, products.AdjustStock(ctx, s.pen.ID, -3), product.ErrNegativeStock)

		p, err := products.FindByID(ctx, s.pen.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Stock)
	})

	t.Run("订单明细顺序与购买记录", func(t *testing.T) {
		o := order.NewOrder(s.alice.ID, "card", []order.Item{
			{ProductID: s.ink.ID, Quantity: 2, Subtotal: decimal.RequireFromString("20.02")},
			{ProductID: s.pen.ID, Quantity: 1, Subtotal: decimal.RequireFromString("19.99")},
		})
		require.NoError(t, orders.Create(ctx, o))

		found, err := orders.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 2)
		assert.Equal(t, s.ink.ID, found.Items[0].ProductID)
		assert.True(t, decimal.RequireFromString("40.01").Equal(found.Total))

		purchased, err := orders.HasPurchased(ctx, s.alice.ID, s.pen.ID)
		require.NoError(t, err)
		assert.True(t, purchased)

		cancelled := order.NewOrder(s.alice.ID, "card", []order.Item{
			{ProductID: s.pen.ID, Quantity: 1, Subtotal: decimal.RequireFromString("19.99")},
		})
		cancelled.Status = order.StatusCancelled
		require.NoError(t, orders.Create(ctx, cancelled))

		totals, err := orders.Totals(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), totals.TotalOrders)
		assert.True(t, decimal.RequireFromString("40.01").Equal(totals.TotalSales))

		monthly, err := orders.MonthlySales(ctx, time.Now().AddDate(0, -1, 0))
		require.NoError(t, err)
		require.Len(t, monthly, 1)
		assert.Equal(t, int64(1), monthly[0].TotalOrders)

		byStatus, err := orders.StatsByStatus(ctx)
		require.NoError(t, err)
		assert.Len(t, byStatus, 2)
	})

	t.Run("事务回滚评价与计数", func(t *testing.T) {
		rv, err := review.NewReview(s.alice.ID, s.pen.ID, 4, "不错")
		require.NoError(t, err)

		err = tx.Transaction(ctx, func(ctx context.Context) error {
			if err := reviews.Create(ctx, rv); err != nil {
				return err
			}
			if err := products.IncrReviewCount(ctx, s.pen.ID, 1); err != nil {
				return err
			}
			return products.IncrReviewCount(ctx, "00000000-0000-4000-8000-000000000000", 1)
		})
		assert.ErrorIs(t, err, product.ErrProductNotFound)

		_, err = reviews.FindByID(ctx, rv.ID)
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
		p, err := products.FindByID(ctx, s.pen.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, p.ReviewCount)
	})

	t.Run("评分统计", func(t *testing.T) {
		for _, rating := range []int{5, 4} {
			rv, err := review.NewReview(s.alice.ID, s.pen.ID, rating, "")
			require.NoError(t, err)
			require.NoError(t, reviews.Create(ctx, rv))
		}

		stats, err := reviews.RatingStats(ctx)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, s.pen.ID, stats[0].ProductID)
		assert.InDelta(t, 4.5, stats[0].AvgRating, 0.001)
		assert.Equal(t, int64(2), stats[0].ReviewCount)
	})
}
