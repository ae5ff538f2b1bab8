// Package metrics 定义storefront的Prometheus指标
//
// 指标在包初始化时注册到默认Registry,通过/metrics端点(promhttp)暴露。
//
// 命名规范:
//   - Counter以_total结尾
//   - Histogram以单位结尾(_seconds)
//   - 标签只使用有限取值(method、status、route),不要用user_id等高基数字段
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// HTTP请求指标
var (
	// HTTPRequestsTotal HTTP请求总数,标签:method、path(路由模板)、status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时(秒)",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)
)

// 订单与评价业务指标
var (
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "订单创建总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_failed_total",
			Help:      "订单创建失败总数",
		},
	)

	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_creation_duration_seconds",
			Help:      "订单创建耗时(秒)",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// OrderStatusChangesTotal 订单状态变更次数,标签:from、to
	OrderStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "订单状态变更次数",
		},
		[]string{"from", "to"},
	)

	ReviewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "评价创建总数",
		},
	)

	// ReviewsRejectedTotal 被拒绝的评价,标签:reason(not_purchased/invalid)
	ReviewsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_rejected_total",
			Help:      "被拒绝的评价总数",
		},
		[]string{"reason"},
	)

	CartCheckoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_checkouts_total",
			Help:      "购物车结算总数",
		},
	)
)

// 缓存指标
var (
	// CacheRequestsTotal 缓存读取次数,result: hit | miss | error
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "缓存读取总数",
		},
		[]string{"cache", "result"},
	)
)

// 熔断器指标
var (
	// CircuitBreakerState 熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		},
		[]string{"name"},
	)

	// CircuitBreakerRequests 熔断器请求数,标签:name、result(success/failure/rejected)
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "熔断器请求总数",
		},
		[]string{"name", "result"},
	)
)

// Saga指标
var (
	// SagaExecutionsTotal Saga执行次数,标签:name、result(success/failure)
	SagaExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saga_executions_total",
			Help:      "Saga执行总数",
		},
		[]string{"name", "result"},
	)

	SagaCompensationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saga_compensations_total",
			Help:      "Saga补偿执行总数",
		},
		[]string{"name"},
	)
)

// 消息队列指标
var (
	// MessagesPublishedTotal 消息发布数,标签:routing_key、result(success/failure/dropped)
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "消息发布总数",
		},
		[]string{"routing_key", "result"},
	)

	// MessagesConsumedTotal 消息消费数,标签:queue、result(success/failure)
	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_processing_duration_seconds",
			Help:      "消息处理耗时(秒)",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
)

// IncCounterVec 递增CounterVec(带标签)
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值(带标签)
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值(带标签)
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
