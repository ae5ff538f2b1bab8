package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/storefront/internal/application/order"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	create       *apporder.CreateOrderUseCase
	update       *apporder.UpdateOrderUseCase
	updateStatus *apporder.UpdateOrderStatusUseCase
	remove       *apporder.DeleteOrderUseCase
	query        *apporder.OrderQuery
	stats        *apporder.OrderStatsUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	create *apporder.CreateOrderUseCase,
	update *apporder.UpdateOrderUseCase,
	updateStatus *apporder.UpdateOrderStatusUseCase,
	remove *apporder.DeleteOrderUseCase,
	query *apporder.OrderQuery,
	stats *apporder.OrderStatsUseCase,
) *OrderHandler {
	return &OrderHandler{
		create:       create,
		update:       update,
		updateStatus: updateStatus,
		remove:       remove,
		query:        query,
		stats:        stats,
	}
}

// Create 创建订单
// @Summary      创建订单
// @Description  按当前商品价格计算小计与总额,任一商品不存在则不创建;下单不扣减库存
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=apporder.OrderView} "下单成功"
// @Failure      400 {object} response.ErrorResponse "参数错误"
// @Failure      401 {object} response.ErrorResponse "未登录"
// @Failure      404 {object} response.ErrorResponse "商品不存在"
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.create.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		Actor:         middleware.Actor(c),
		UserID:        req.UserID,
		Items:         dto.ToLines(req.Items),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List 全部订单(管理员)
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderView}
// @Failure      403 {object} response.ErrorResponse "非管理员"
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.query.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Stats 订单统计(管理员)
// @Summary      订单统计
// @Description  按状态统计、月度销售(不含已取消)、整体汇总
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        months query int false "月度统计回溯月数" default(6)
// @Success      200 {object} response.Response{data=apporder.StatsResponse}
// @Router       /orders/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	var q dto.StatsQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.stats.Execute(c.Request.Context(), q.Months)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ByUser 用户的订单(本人或管理员),最新的在前
// @Summary      用户订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "用户ID"
// @Success      200 {object} response.Response{data=[]apporder.OrderView}
// @Failure      403 {object} response.ErrorResponse "无权限"
// @Router       /orders/user/{userId} [get]
func (h *OrderHandler) ByUser(c *gin.Context) {
	result, err := h.query.ByUser(c.Request.Context(), middleware.Actor(c), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 订单详情(下单人或管理员)
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      404 {object} response.ErrorResponse "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	result, err := h.query.Get(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 更新订单(下单人或管理员,status只允许管理员修改)
// @Summary      更新订单
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                 true "订单ID"
// @Param        request body dto.UpdateOrderRequest true "更新内容"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      400 {object} response.ErrorResponse "参数错误或状态流转非法"
// @Failure      403 {object} response.ErrorResponse "无权限"
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.update.Execute(c.Request.Context(), apporder.UpdateOrderRequest{
		Actor:         middleware.Actor(c),
		OrderID:       c.Param("id"),
		Items:         dto.ToLines(req.Items),
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 修改订单状态(管理员)
// @Summary      修改订单状态
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                       true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      400 {object} response.ErrorResponse "状态为空、未知或流转非法"
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.updateStatus.Execute(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除订单(管理员)
// @Summary      删除订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
