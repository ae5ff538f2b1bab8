// storefront API服务入口
//
// @title                      Storefront API
// @version                    1.0
// @description                电商后台:用户、商品目录、订单、评价与购物车
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	_ "github.com/xiebiao/storefront/docs"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/logger"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// main 启动流程:配置 → 日志 → 链路追踪 → Wire组装 → HTTP服务 → 优雅关闭
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	// 金额以JSON数字输出
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			lg.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				lg.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	engine, cleanup, err := InitializeApp(cfg, lg)
	if err != nil {
		lg.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      otelhttp.NewHandler(engine, cfg.Tracing.ServiceName),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		lg.Info("http server started",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("正在优雅关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("服务器强制关闭", zap.Error(err))
		return
	}
	lg.Info("服务已关闭")
}
