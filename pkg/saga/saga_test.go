package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

func TestSaga_Execute_Success(t *testing.T) {
	executed := make([]string, 0)

	s := NewSaga("delete-user", 5*time.Second)
	s.AddStep("清空购物车",
		func(ctx context.Context) error {
			executed = append(executed, "清空购物车")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "恢复购物车")
			return nil
		},
	)
	s.AddStep("删除用户",
		func(ctx context.Context) error {
			executed = append(executed, "删除用户")
			return nil
		},
		nil,
	)

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"清空购物车", "删除用户"}, executed)
}

func TestSaga_Execute_FailureCompensatesInReverse(t *testing.T) {
	executed := make([]string, 0)
	step := func(name string, fail bool) (func(context.Context) error, func(context.Context) error) {
		return func(ctx context.Context) error {
				executed = append(executed, name)
				if fail {
					return errors.New(name + "失败")
				}
				return nil
			}, func(ctx context.Context) error {
				executed = append(executed, "补偿"+name)
				return nil
			}
	}

	s := NewSaga("three-steps", 5*time.Second)
	a, ca := step("A", false)
	b, cb := step("B", false)
	c, cc := step("C", true)
	s.AddStep("A", a, ca)
	s.AddStep("B", b, cb)
	s.AddStep("C", c, cc)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"A", "B", "C", "补偿B", "补偿A"}, executed)
}

func TestSaga_Execute_KeepsAppError(t *testing.T) {
	notFound := apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	s := NewSaga("delete-user", time.Second)
	s.AddStep("删除用户", func(ctx context.Context) error { return notFound }, nil)

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, apperrors.ErrCodeUserNotFound, apperrors.GetAppError(err).Code)
}

func TestSaga_Execute_Timeout(t *testing.T) {
	executed := make([]string, 0)

	s := NewSaga("slow", 50*time.Millisecond)
	s.AddStep("快速步骤",
		func(ctx context.Context) error {
			executed = append(executed, "快速步骤")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "快速步骤补偿")
			return nil
		},
	)
	s.AddStep("慢速步骤",
		func(ctx context.Context) error {
			select {
			case <-time.After(time.Second):
				executed = append(executed, "慢速步骤")
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		nil,
	)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"快速步骤", "快速步骤补偿"}, executed)
}

func TestSaga_CompensationFailureContinues(t *testing.T) {
	compensated := false

	s := NewSaga("partial", time.Second)
	s.AddStep("A", func(ctx context.Context) error { return nil }, func(ctx context.Context) error {
		compensated = true
		return nil
	})
	s.AddStep("B", func(ctx context.Context) error { return nil }, func(ctx context.Context) error {
		return errors.New("redis down")
	})
	s.AddStep("C", func(ctx context.Context) error { return errors.New("boom") }, nil)

	require.Error(t, s.Execute(context.Background()))
	assert.True(t, compensated, "B补偿失败后仍应执行A的补偿")
}
