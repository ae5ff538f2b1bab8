package messaging

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/pkg/mq"
)

// EventRoutingKeys 事件日志消费者绑定的routing key
var EventRoutingKeys = []string{"order.*", "review.*", "user.*"}

// LogHandler 把收到的领域事件写入日志
// 无法解析的消息直接确认丢弃,避免反复重新入队
func LogHandler(logger *zap.Logger) mq.Handler {
	return func(ctx context.Context, routingKey string, body []byte) error {
		var evt struct {
			event.Event
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(body, &evt); err != nil {
			logger.Warn("丢弃无法解析的事件", zap.String("routing_key", routingKey), zap.Error(err))
			return nil
		}

		logger.Info("domain event",
			zap.String("routing_key", routingKey),
			zap.String("type", evt.Type),
			zap.Time("occurred_at", evt.OccurredAt),
			zap.ByteString("payload", evt.Payload),
		)
		return nil
	}
}
