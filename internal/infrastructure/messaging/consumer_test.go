package messaging

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/storefront/internal/domain/event"
)

func TestLogHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handle := LogHandler(zap.New(core))

	t.Run("记录事件", func(t *testing.T) {
		body, err := json.Marshal(event.New(event.OrderCreated, event.OrderPayload{OrderID: "o-1", UserID: "u-1"}))
		require.NoError(t, err)

		require.NoError(t, handle(context.Background(), event.OrderCreated, body))

		entries := logs.FilterMessage("domain event").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, event.OrderCreated, fields["type"])
		assert.Contains(t, fields["payload"], `"order_id":"o-1"`)
	})

	t.Run("无法解析的消息不重新入队", func(t *testing.T) {
		assert.NoError(t, handle(context.Background(), "order.created", []byte("{broken")))
		assert.Equal(t, 1, logs.FilterMessage("丢弃无法解析的事件").Len())
	})
}
