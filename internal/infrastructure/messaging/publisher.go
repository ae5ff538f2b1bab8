// Package messaging 领域事件发布到RabbitMQ
package messaging

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/pkg/circuitbreaker"
	"github.com/xiebiao/storefront/pkg/mq"
)

// sender 消息发送,由mq.Publisher实现
type sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// Publisher 经熔断器发布领域事件
// MQ连续失败后熔断,此时事件直接丢弃并记录日志,下单等请求不被拖慢
type Publisher struct {
	sender  sender
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewPublisher 创建事件发布者
func NewPublisher(s sender, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) *Publisher {
	return &Publisher{sender: s, breaker: breaker, logger: logger}
}

// Publish 事件类型作为routing key
func (p *Publisher) Publish(ctx context.Context, evt event.Event) {
	err := p.breaker.Execute(func() error {
		return p.sender.Publish(ctx, evt.Type, evt)
	})
	if err == nil {
		return
	}

	if errors.Is(err, circuitbreaker.ErrOpenState) {
		p.logger.Warn("熔断中,丢弃事件", zap.String("type", evt.Type), zap.String("breaker", p.breaker.Name()))
		return
	}
	p.logger.Error("发布事件失败", zap.String("type", evt.Type), zap.Error(err))
}

// NewEventPublisher 按配置创建事件发布者
// mq.enabled=false时返回NoopPublisher;返回的cleanup负责关闭连接
func NewEventPublisher(cfg *config.Config, logger *zap.Logger) (event.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		logger.Info("未启用MQ,领域事件不发布")
		return event.NoopPublisher{}, func() {}, nil
	}

	mqPublisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger)
	if err != nil {
		return nil, nil, err
	}

	breaker := circuitbreaker.NewCircuitBreaker("event-publisher", circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     cfg.MQ.BreakerOpen,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.MQ.BreakerTrips),
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		logger.Warn("熔断器状态变化", zap.String("name", name), zap.Stringer("from", from), zap.Stringer("to", to))
	})

	cleanup := func() {
		if err := mqPublisher.Close(); err != nil {
			logger.Warn("关闭MQ连接失败", zap.Error(err))
		}
	}
	return NewPublisher(mqPublisher, breaker, logger), cleanup, nil
}
