package order

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/tracing"
)

const tracerName = "storefront/order"

// CreateOrderUseCase 创建订单用例
// 价格以数据库中的当前价格为准,不信任客户端传入的价格;下单不占用库存
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	productRepo product.Repository
	userRepo    user.Repository
	projector   *Projector
	publisher   event.Publisher
	logger      *zap.Logger
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	userRepo user.Repository,
	projector *Projector,
	publisher event.Publisher,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		projector:   projector,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Actor user.Actor
	// UserID 管理员代客下单时指定,普通用户忽略此字段
	UserID        string
	Items         []order.LineRequest
	PaymentMethod string
}

// Execute 执行下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (view *OrderView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.OrderCreationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.OrdersFailedTotal.Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		metrics.OrdersCreatedTotal.Inc()
	}()

	// 1. 确定下单用户
	userID, err := uc.resolveUser(ctx, req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", userID), attribute.Int("item_count", len(req.Items)))

	// 2. 参数校验
	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		return nil, order.ErrPaymentMethodRequired
	}

	// 3. 按当前价格定价,任一商品不存在则不落库
	items, err := priceLines(ctx, uc.productRepo, req.Items)
	if err != nil {
		return nil, err
	}

	// 4. 创建订单(订单头与明细在同一个INSERT事务中写入)
	o := order.NewOrder(userID, paymentMethod, items)
	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("order_id", o.ID), attribute.String("total", o.Total.String()))

	uc.logger.Info("订单已创建",
		zap.String("order_id", o.ID),
		zap.String("user_id", userID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)

	// 5. 发布事件(失败只记录日志)
	uc.publisher.Publish(ctx, event.New(event.OrderCreated, event.OrderPayload{
		OrderID: o.ID,
		UserID:  o.UserID,
		Total:   o.Total.StringFixed(2),
		Status:  string(o.Status),
	}))

	return uc.projector.One(ctx, o)
}

// resolveUser 普通用户只能为自己下单,管理员可以指定用户
func (uc *CreateOrderUseCase) resolveUser(ctx context.Context, req CreateOrderRequest) (string, error) {
	userID := req.Actor.ID
	if req.Actor.IsAdmin() && req.UserID != "" {
		userID = req.UserID
	}
	if userID == "" {
		return "", order.ErrUserRequired
	}
	if !idgen.Valid(userID) {
		return "", apperrors.ErrInvalidID.WithDetails("user_id=" + userID)
	}
	if userID != req.Actor.ID {
		if _, err := uc.userRepo.FindByID(ctx, userID); err != nil {
			return "", err
		}
	}
	return userID, nil
}
