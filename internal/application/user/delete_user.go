package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
	"github.com/xiebiao/storefront/pkg/saga"
)

const deleteUserTimeout = 10 * time.Second

// DeleteUserUseCase 删除用户(管理员)
// 用户数据在MySQL,购物车在Redis,无法放进同一事务,用Saga保证一致:
//  1. 快照并清空购物车(补偿:写回快照)
//  2. 删除用户(失败时触发步骤1的补偿)
type DeleteUserUseCase struct {
	userRepo     user.Repository
	cartStore    cart.Store
	sessionStore SessionStore
	publisher    event.Publisher
	logger       *zap.Logger
}

// NewDeleteUserUseCase 创建用例
func NewDeleteUserUseCase(
	userRepo user.Repository,
	cartStore cart.Store,
	sessionStore SessionStore,
	publisher event.Publisher,
	logger *zap.Logger,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:     userRepo,
		cartStore:    cartStore,
		sessionStore: sessionStore,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute 执行删除
func (uc *DeleteUserUseCase) Execute(ctx context.Context, actor user.Actor, userID string) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if !idgen.Valid(userID) {
		return apperrors.ErrInvalidID
	}
	if _, err := uc.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	var snapshot *cart.Cart
	s := saga.NewSaga("delete-user", deleteUserTimeout, saga.WithLogger(uc.logger))
	s.AddStep("清空购物车",
		func(ctx context.Context) error {
			c, err := uc.cartStore.Get(ctx, userID)
			if err != nil {
				return err
			}
			snapshot = c
			return uc.cartStore.Clear(ctx, userID)
		},
		func(ctx context.Context) error {
			if snapshot == nil {
				return nil
			}
			return uc.cartStore.Restore(ctx, snapshot)
		},
	)
	s.AddStep("删除用户",
		func(ctx context.Context) error {
			return uc.userRepo.Delete(ctx, userID)
		},
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		return err
	}

	// 会话清理失败不影响删除结果,Token过期后自然失效
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		uc.logger.Warn("删除会话失败", zap.String("user_id", userID), zap.Error(err))
	}

	uc.publisher.Publish(ctx, event.New(event.UserDeleted, map[string]string{"user_id": userID}))
	return nil
}
