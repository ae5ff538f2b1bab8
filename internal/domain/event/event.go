// Package event 领域事件
//
// 事件发布是尽力而为的:发布失败只记录日志,不影响业务操作结果。
package event

import (
	"context"
	"time"
)

// 事件类型,同时作为RabbitMQ routing key
const (
	OrderCreated       = "order.created"
	OrderUpdated       = "order.updated"
	OrderStatusChanged = "order.status_changed"
	OrderDeleted       = "order.deleted"
	ReviewCreated      = "review.created"
	ReviewDeleted      = "review.deleted"
	UserDeleted        = "user.deleted"
)

// Event 领域事件
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New 创建事件
func New(eventType string, payload interface{}) Event {
	return Event{Type: eventType, OccurredAt: time.Now(), Payload: payload}
}

// Publisher 事件发布者
type Publisher interface {
	Publish(ctx context.Context, evt Event)
}

// NoopPublisher 未启用MQ时使用
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, evt Event) {}

// Recorder 记录已发布事件,用于测试
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(ctx context.Context, evt Event) {
	r.Events = append(r.Events, evt)
}

// Types 已发布事件的类型列表
func (r *Recorder) Types() []string {
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}

// OrderPayload 订单事件内容
type OrderPayload struct {
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	Total      string `json:"total,omitempty"`
	FromStatus string `json:"from_status,omitempty"`
	Status     string `json:"status,omitempty"`
}

// ReviewPayload 评价事件内容
type ReviewPayload struct {
	ReviewID  string `json:"review_id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating,omitempty"`
}
