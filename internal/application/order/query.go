package order

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// OrderQuery 订单查询用例
type OrderQuery struct {
	orderRepo order.Repository
	projector *Projector
}

// NewOrderQuery 创建订单查询
func NewOrderQuery(orderRepo order.Repository, projector *Projector) *OrderQuery {
	return &OrderQuery{orderRepo: orderRepo, projector: projector}
}

// Get 订单详情(所有者或管理员)
func (q *OrderQuery) Get(ctx context.Context, actor user.Actor, orderID string) (*OrderView, error) {
	if !idgen.Valid(orderID) {
		return nil, apperrors.ErrInvalidID
	}
	o, err := q.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(o.UserID) {
		return nil, apperrors.ErrForbidden
	}
	return q.projector.One(ctx, o)
}

// List 全部订单(管理员),不分页
func (q *OrderQuery) List(ctx context.Context) ([]*OrderView, error) {
	orders, err := q.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return q.projector.Many(ctx, orders)
}

// ByUser 用户的订单,按创建时间倒序(本人或管理员)
func (q *OrderQuery) ByUser(ctx context.Context, actor user.Actor, userID string) ([]*OrderView, error) {
	if !idgen.Valid(userID) {
		return nil, apperrors.ErrInvalidID
	}
	if !actor.CanAccess(userID) {
		return nil, apperrors.ErrForbidden
	}
	orders, err := q.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return q.projector.Many(ctx, orders)
}
