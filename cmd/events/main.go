// 领域事件日志消费者:订阅storefront.events并把事件写入日志
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/logger"
	"github.com/xiebiao/storefront/internal/infrastructure/messaging"
	"github.com/xiebiao/storefront/pkg/mq"
)

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

	if !cfg.MQ.Enabled {
		lg.Fatal("mq.enabled=false,没有可消费的事件")
	}

	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		cfg.MQ.ExchangeType,
		cfg.MQ.Queue,
		messaging.EventRoutingKeys,
		lg,
	)
	if err != nil {
		lg.Fatal("创建消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Consume(ctx, messaging.LogHandler(lg)); err != nil {
		lg.Error("消费中断", zap.Error(err))
	}
}
