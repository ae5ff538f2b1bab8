package order

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// UpdateOrderUseCase 更新订单(订单所有者或管理员)
// 1. 传入非空明细时按当前价格整体重新定价
// 2. 明细为空时保留原明细与总额
// 3. 支付方式、状态只在传入非空值时覆盖,状态只能由管理员修改
type UpdateOrderUseCase struct {
	orderRepo   order.Repository
	productRepo product.Repository
	policy      order.StatusPolicy
	projector   *Projector
	publisher   event.Publisher
}

// NewUpdateOrderUseCase 创建用例
func NewUpdateOrderUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	policy order.StatusPolicy,
	projector *Projector,
	publisher event.Publisher,
) *UpdateOrderUseCase {
	return &UpdateOrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		policy:      policy,
		projector:   projector,
		publisher:   publisher,
	}
}

// UpdateOrderRequest 更新请求,nil或空白字符串表示不修改
type UpdateOrderRequest struct {
	Actor         user.Actor
	OrderID       string
	Items         []order.LineRequest
	PaymentMethod *string
	Status        *string
}

// Execute 执行更新
func (uc *UpdateOrderUseCase) Execute(ctx context.Context, req UpdateOrderRequest) (view *OrderView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateOrder")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	span.SetAttributes(attribute.String("order_id", req.OrderID))

	// 1. 加载订单并校验权限
	if !idgen.Valid(req.OrderID) {
		return nil, apperrors.ErrInvalidID
	}
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !req.Actor.CanAccess(o.UserID) {
		return nil, apperrors.ErrForbidden
	}
	paymentMethod, hasPaymentMethod := nonBlank(req.PaymentMethod)
	status, hasStatus := nonBlank(req.Status)
	if hasStatus && !req.Actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	// 2. 明细重新定价
	if len(req.Items) > 0 {
		items, err := priceLines(ctx, uc.productRepo, req.Items)
		if err != nil {
			return nil, err
		}
		o.ReplaceItems(items)
	}

	// 3. 支付方式
	if hasPaymentMethod {
		o.PaymentMethod = paymentMethod
	}

	// 4. 状态走同一套流转规则
	from := o.Status
	statusChanged := false
	if hasStatus {
		target, err := order.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		if statusChanged, err = o.TransitionTo(target, uc.policy); err != nil {
			return nil, err
		}
	}

	// 5. 持久化(明细整体替换与总额在同一事务中写入)
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	payload := event.OrderPayload{OrderID: o.ID, UserID: o.UserID, Total: o.Total.StringFixed(2), Status: string(o.Status)}
	uc.publisher.Publish(ctx, event.New(event.OrderUpdated, payload))
	if statusChanged {
		metrics.OrderStatusChangesTotal.WithLabelValues(string(from), string(o.Status)).Inc()
		payload.FromStatus = string(from)
		uc.publisher.Publish(ctx, event.New(event.OrderStatusChanged, payload))
	}

	return uc.projector.One(ctx, o)
}

func nonBlank(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}
