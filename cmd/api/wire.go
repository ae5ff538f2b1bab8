//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	"github.com/xiebiao/storefront/internal/application/catalog"
	apporder "github.com/xiebiao/storefront/internal/application/order"
	appreview "github.com/xiebiao/storefront/internal/application/review"
	appuser "github.com/xiebiao/storefront/internal/application/user"
	"github.com/xiebiao/storefront/internal/domain/user"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/messaging"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、事件发布
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	messaging.NewEventPublisher,
)

// repositorySet 仓储与存储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewCategoryRepository,
	provideProductRepository,
	mysql.NewOrderRepository,
	mysql.NewReviewRepository,
	mysql.NewTxManager,
	wire.Bind(new(appreview.TxManager), new(*mysql.TxManager)),
	redis.NewCartStore,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	providePurchaseVerifier,
)

var domainSet = wire.NewSet(
	user.NewService,
	provideStatusPolicy,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewGetUserUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewCreateUserUseCase,
	appuser.NewUpdateUserUseCase,
	appuser.NewDeleteUserUseCase,
	appuser.NewAddAddressUseCase,
	appuser.NewRemoveAddressUseCase,

	catalog.NewCategoryService,
	catalog.NewProductQuery,
	catalog.NewCreateProductUseCase,
	catalog.NewUpdateProductUseCase,
	catalog.NewDeleteProductUseCase,
	catalog.NewUpdateStockUseCase,

	apporder.NewProjector,
	apporder.NewCreateOrderUseCase,
	apporder.NewUpdateOrderUseCase,
	apporder.NewUpdateOrderStatusUseCase,
	apporder.NewDeleteOrderUseCase,
	apporder.NewOrderQuery,
	provideOrderStats,

	appreview.NewCreateReviewUseCase,
	appreview.NewUpdateReviewUseCase,
	appreview.NewDeleteReviewUseCase,
	appreview.NewReviewQuery,

	appcart.NewCartService,
	provideOrderPlacer,
)

var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
)

var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewCategoryHandler,
	handler.NewProductHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewCartHandler,
	provideHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 组装Gin引擎
// cleanup按创建的逆序关闭事件发布者、Redis与MySQL连接
func InitializeApp(cfg *config.Config, lg *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		router.New,
	)
	return nil, nil, nil
}
