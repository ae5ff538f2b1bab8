package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/application/catalog"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/response"
)

// ProductHandler 商品管理
type ProductHandler struct {
	query  *catalog.ProductQuery
	create *catalog.CreateProductUseCase
	update *catalog.UpdateProductUseCase
	remove *catalog.DeleteProductUseCase
	stock  *catalog.UpdateStockUseCase
}

func NewProductHandler(
	query *catalog.ProductQuery,
	create *catalog.CreateProductUseCase,
	update *catalog.UpdateProductUseCase,
	remove *catalog.DeleteProductUseCase,
	stock *catalog.UpdateStockUseCase,
) *ProductHandler {
	return &ProductHandler{query: query, create: create, update: update, remove: remove, stock: stock}
}

// List 商品列表(附带分类)
// @Summary      商品列表
// @Tags         商品
// @Produce      json
// @Success      200 {object} response.Response{data=[]catalog.ProductDTO}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	result, err := h.query.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Filter 按价格区间与品牌筛选,按价格升序
// @Summary      筛选商品
// @Tags         商品
// @Produce      json
// @Param        minPrice query number false "最低价"
// @Param        maxPrice query number false "最高价"
// @Param        brand    query string false "品牌"
// @Success      200 {object} response.Response{data=[]catalog.ProductDTO}
// @Failure      400 {object} response.ErrorResponse "价格格式错误"
// @Router       /products/filter [get]
func (h *ProductHandler) Filter(c *gin.Context) {
	var q dto.ProductFilterQuery
	if !bindQuery(c, &q) {
		return
	}
	minPrice, err := parsePrice("minPrice", q.MinPrice)
	if err != nil {
		response.Error(c, err)
		return
	}
	maxPrice, err := parsePrice("maxPrice", q.MaxPrice)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.query.Filter(c.Request.Context(), catalog.FilterRequest{
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Brand:    q.Brand,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Top 评价数最多的商品
// @Summary      热门商品
// @Tags         商品
// @Produce      json
// @Param        limit query int false "数量" default(10)
// @Success      200 {object} response.Response{data=[]catalog.ProductDTO}
// @Router       /products/top [get]
func (h *ProductHandler) Top(c *gin.Context) {
	var q dto.LimitQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.query.Top(c.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response{data=catalog.ProductDTO}
// @Failure      404 {object} response.ErrorResponse "商品不存在"
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	result, err := h.query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 创建商品(管理员)
// @Summary      创建商品
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=catalog.ProductDTO}
// @Failure      404 {object} response.ErrorResponse "分类不存在"
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.create.Execute(c.Request.Context(), catalog.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       *req.Price,
		Stock:       req.Stock,
		Brand:       req.Brand,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 部分更新商品(管理员)
// @Summary      更新商品
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "商品ID"
// @Param        request body dto.UpdateProductRequest true "更新内容"
// @Success      200 {object} response.Response{data=catalog.ProductDTO}
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.update.Execute(c.Request.Context(), catalog.UpdateProductRequest{
		ID:    c.Param("id"),
		Patch: req.ToPatch(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除商品(管理员)
// @Summary      删除商品
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UpdateStock 修改库存(管理员)
// @Summary      修改库存
// @Description  stock为绝对值,adjust为增量;结果为负时拒绝且库存不变
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                 true "商品ID"
// @Param        request body dto.UpdateStockRequest true "库存修改"
// @Success      200 {object} response.Response{data=catalog.UpdateStockResponse}
// @Failure      400 {object} response.ErrorResponse "参数错误或库存为负"
// @Router       /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	var req dto.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.stock.Execute(c.Request.Context(), catalog.UpdateStockRequest{
		ID:     c.Param("id"),
		Change: product.StockChange{Stock: req.Stock, Adjust: req.Adjust},
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func parsePrice(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.ErrInvalidParams.WithDetails(name + "必须为数字")
	}
	return &d, nil
}
