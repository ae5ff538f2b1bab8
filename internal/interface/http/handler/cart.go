package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// CartHandler 当前用户的购物车
type CartHandler struct {
	service *appcart.CartService
}

func NewCartHandler(service *appcart.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem 加入购物车,数量累加
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "商品与数量"
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Failure      404 {object} response.ErrorResponse "商品不存在"
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Add(c.Request.Context(), middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SetItem 修改数量
// @Summary      修改购物车数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId path string                 true "商品ID"
// @Param        request   body dto.SetCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Failure      404 {object} response.ErrorResponse "购物车中没有该商品"
// @Router       /cart/items/{productId} [put]
func (h *CartHandler) SetItem(c *gin.Context) {
	var req dto.SetCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.SetQuantity(c.Request.Context(), middleware.GetUserID(c), c.Param("productId"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem 移除商品
// @Summary      移除购物车商品
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        productId path string true "商品ID"
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Router       /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	result, err := h.service.Remove(c.Request.Context(), middleware.GetUserID(c), c.Param("productId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Checkout 结算,按购物车明细下单后清空购物车
// @Summary      购物车结算
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "支付方式"
// @Success      201 {object} response.Response "下单成功,data为订单"
// @Failure      400 {object} response.ErrorResponse "购物车为空"
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Checkout(c.Request.Context(), middleware.Actor(c), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
