package order

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/order"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// UpdateOrderStatusUseCase 修改订单状态(管理员)
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
	policy    order.StatusPolicy
	projector *Projector
	publisher event.Publisher
}

// NewUpdateOrderStatusUseCase 创建用例
func NewUpdateOrderStatusUseCase(
	orderRepo order.Repository,
	policy order.StatusPolicy,
	projector *Projector,
	publisher event.Publisher,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		policy:    policy,
		projector: projector,
		publisher: publisher,
	}
}

// Execute 执行状态修改
// 1. 状态为空 → 参数错误;未知状态或不允许的流转 → 校验错误
// 2. 状态未变化时不写库,直接返回
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, orderID, status string) (*OrderView, error) {
	if !idgen.Valid(orderID) {
		return nil, apperrors.ErrInvalidID
	}
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	changed, err := o.TransitionTo(target, uc.policy)
	if err != nil {
		return nil, err
	}
	if !changed {
		return uc.projector.One(ctx, o)
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	metrics.OrderStatusChangesTotal.WithLabelValues(string(from), string(target)).Inc()

	uc.publisher.Publish(ctx, event.New(event.OrderStatusChanged, event.OrderPayload{
		OrderID:    o.ID,
		UserID:     o.UserID,
		FromStatus: string(from),
		Status:     string(target),
	}))

	return uc.projector.One(ctx, o)
}
