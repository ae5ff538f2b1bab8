package order

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/order"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// DeleteOrderUseCase 删除订单(管理员)
// 已有评价不随订单删除而撤销
type DeleteOrderUseCase struct {
	orderRepo order.Repository
	publisher event.Publisher
}

// NewDeleteOrderUseCase 创建用例
func NewDeleteOrderUseCase(orderRepo order.Repository, publisher event.Publisher) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{orderRepo: orderRepo, publisher: publisher}
}

// Execute 执行删除
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, orderID string) error {
	if !idgen.Valid(orderID) {
		return apperrors.ErrInvalidID
	}
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := uc.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	uc.publisher.Publish(ctx, event.New(event.OrderDeleted, event.OrderPayload{
		OrderID: o.ID,
		UserID:  o.UserID,
		Status:  string(o.Status),
	}))
	return nil
}
