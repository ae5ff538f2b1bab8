// Package router 组装Gin引擎:全局中间件、运维接口与/api/v1业务路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	Cart     *handler.CartHandler
	Health   *handler.HealthHandler
}

// New 创建Gin引擎并注册路由
func New(cfg *config.Config, logger *zap.Logger, auth *middleware.AuthMiddleware, h *Handlers) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	// 运维接口
	r.GET("/ping", h.Health.Ping)
	r.GET("/health", h.Health.Health)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireAdmin()

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", requireAuth, h.Auth.Logout)
	}

	// 本人或管理员的访问控制在用例层按Actor判断
	users := v1.Group("/users", requireAuth)
	{
		users.GET("/me", h.User.Me)
		users.GET("", requireAdmin, h.User.List)
		users.POST("", requireAdmin, h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", requireAdmin, h.User.Delete)
		users.POST("/:id/addresses", h.User.AddAddress)
		users.DELETE("/:id/addresses/:index", h.User.RemoveAddress)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/stats", h.Category.Stats)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", requireAuth, requireAdmin, h.Category.Create)
		categories.PUT("/:id", requireAuth, requireAdmin, h.Category.Update)
		categories.DELETE("/:id", requireAuth, requireAdmin, h.Category.Delete)
	}

	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/filter", h.Product.Filter)
		products.GET("/top", h.Product.Top)
		products.GET("/:id", h.Product.Get)
		products.POST("", requireAuth, requireAdmin, h.Product.Create)
		products.PUT("/:id", requireAuth, requireAdmin, h.Product.Update)
		products.DELETE("/:id", requireAuth, requireAdmin, h.Product.Delete)
		products.PATCH("/:id/stock", requireAuth, requireAdmin, h.Product.UpdateStock)
	}

	orders := v1.Group("/orders", requireAuth)
	{
		orders.GET("", requireAdmin, h.Order.List)
		orders.GET("/stats", requireAdmin, h.Order.Stats)
		orders.GET("/user/:userId", h.Order.ByUser)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", requireAdmin, h.Order.Delete)
		orders.PATCH("/:id/status", requireAdmin, h.Order.UpdateStatus)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", h.Review.List)
		reviews.GET("/top", h.Review.Top)
		reviews.GET("/averages", h.Review.Averages)
		reviews.GET("/product/:productId", h.Review.ByProduct)
		reviews.GET("/:id", h.Review.Get)
		reviews.POST("", requireAuth, h.Review.Create)
		reviews.PUT("/:id", requireAuth, h.Review.Update)
		reviews.DELETE("/:id", requireAuth, h.Review.Delete)
	}

	cart := v1.Group("/cart", requireAuth)
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:productId", h.Cart.SetItem)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
		cart.POST("/checkout", h.Cart.Checkout)
	}

	return r
}
