// Package circuitbreaker 熔断器
//
// 三种状态:
//   - CLOSED: 正常放行,统计失败次数,达到阈值转为OPEN
//   - OPEN: 快速失败,Timeout后转为HALF_OPEN
//   - HALF_OPEN: 放行少量探测请求,成功转为CLOSED,失败转回OPEN
//
// storefront中用于保护事件发布(RabbitMQ不可用时不拖慢下单请求)。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/xiebiao/storefront/pkg/metrics"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大探测请求数
	MaxRequests uint32

	// Interval CLOSED状态的统计窗口,过期后清零计数;为0时不清零
	Interval time.Duration

	// Timeout OPEN状态持续时间
	Timeout time.Duration

	// ReadyToTrip 根据统计数据判断是否熔断,为nil时连续失败5次熔断
	ReadyToTrip func(counts Counts) bool
}

// Counts 统计数据
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c *Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

// Reset 重置统计
func (c *Counts) Reset() {
	*c = Counts{}
}

func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name          string
	maxRequests   uint32
	interval      time.Duration
	timeout       time.Duration
	readyToTrip   func(counts Counts) bool
	state         State
	generation    uint64 // 每次状态切换递增,丢弃切换前发出的请求结果
	counts        Counts
	expiry        time.Time
	mu            sync.Mutex
	onStateChange func(name string, from State, to State)
}

// ErrOpenState 熔断器打开
var ErrOpenState = errors.New("circuit breaker is open")

// ConsecutiveFailures 连续失败n次熔断
func ConsecutiveFailures(n uint32) func(counts Counts) bool {
	return func(counts Counts) bool {
		return counts.ConsecutiveFailures >= n
	}
}

// NewCircuitBreaker 创建熔断器,状态变化同步到circuit_breaker_state指标
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	readyToTrip := config.ReadyToTrip
	if readyToTrip == nil {
		readyToTrip = ConsecutiveFailures(5)
	}
	maxRequests := config.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1
	}

	cb := &CircuitBreaker{
		name:        name,
		maxRequests: maxRequests,
		interval:    config.Interval,
		timeout:     config.Timeout,
		readyToTrip: readyToTrip,
		state:       StateClosed,
	}
	cb.expiry = cb.closedExpiry(time.Now())
	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(StateClosed))
	return cb
}

// SetStateChangeCallback 设置状态变化回调(记录日志等)
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Execute 在熔断器保护下执行req
// 熔断器打开时直接返回ErrOpenState,不调用req
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		metrics.CircuitBreakerRequests.WithLabelValues(cb.name, "rejected").Inc()
		return err
	}

	err = req()

	cb.afterRequest(generation, err == nil)
	if err != nil {
		metrics.CircuitBreakerRequests.WithLabelValues(cb.name, "failure").Inc()
	} else {
		metrics.CircuitBreakerRequests.WithLabelValues(cb.name, "success").Inc()
	}
	return err
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(time.Now())

	if state == StateOpen {
		return generation, ErrOpenState
	} else if state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests {
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

// currentState CLOSED状态窗口过期时清零计数,OPEN状态超时后转为HALF_OPEN
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts.Reset()
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts.Reset()

	switch state {
	case StateClosed:
		cb.expiry = cb.closedExpiry(now)
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{}
	}

	metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(float64(state))
	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

// closedExpiry interval<=0时CLOSED状态不按窗口清零计数
func (cb *CircuitBreaker) closedExpiry(now time.Time) time.Time {
	if cb.interval <= 0 {
		return time.Time{}
	}
	return now.Add(cb.interval)
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// Counts 当前统计数据
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}
