// Package saga 跨存储的补偿式事务
//
// 一个Saga由若干步骤组成,每个步骤有正向操作和补偿操作。
// 某一步失败时,按逆序执行已完成步骤的补偿操作。
// 用于无法放进同一个数据库事务的写操作(如Redis + MySQL)。
package saga

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/pkg/metrics"
)

// Step Saga中的一个步骤
// Action和Compensate都必须幂等
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次Saga执行
// 非并发安全,每次业务操作创建新的Saga
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
	logger   *zap.Logger
}

// Option Saga可选配置
type Option func(*Saga)

// WithLogger 设置补偿失败时使用的日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *Saga) {
		s.logger = logger
	}
}

// NewSaga 创建Saga
//
//	s := saga.NewSaga("delete-user", 10*time.Second)
//	s.AddStep("清空购物车", clearCart, restoreCart)
//	s.AddStep("删除用户", deleteUser, nil)
//	err := s.Execute(ctx)
func NewSaga(name string, timeout time.Duration, opts ...Option) *Saga {
	s := &Saga{
		name:    name,
		steps:   make([]Step, 0),
		timeout: timeout,
		logger:  zap.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddStep 添加步骤(按添加顺序执行,按逆序补偿)
// 最后一步通常无需补偿,compensate可以为nil
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga
// 步骤失败或超时都会触发补偿,返回的错误包装了原始错误(errors.As可提取AppError)
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		select {
		case <-ctx.Done():
			// 补偿使用独立Context,避免补偿也超时
			s.compensate(context.WithoutCancel(ctx))
			s.record("failure")
			return fmt.Errorf("saga[%s]超时: %w", s.name, ctx.Err())
		default:
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.WithoutCancel(ctx))
				s.record("failure")
				return fmt.Errorf("saga[%s]步骤[%d:%s]执行失败: %w", s.name, i, step.Name, err)
			}
		}

		s.executed = append(s.executed, step)
	}

	s.record("success")
	return nil
}

// compensate 逆序执行已完成步骤的补偿
// 某个补偿失败时记录日志并继续执行后续补偿
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}

		metrics.SagaCompensationsTotal.WithLabelValues(s.name).Inc()
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
		}
	}

	s.executed = nil
}

func (s *Saga) record(result string) {
	metrics.SagaExecutionsTotal.WithLabelValues(s.name, result).Inc()
}
