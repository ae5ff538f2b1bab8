package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/storefront/internal/application/review"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// ReviewHandler 评价
type ReviewHandler struct {
	create *appreview.CreateReviewUseCase
	update *appreview.UpdateReviewUseCase
	remove *appreview.DeleteReviewUseCase
	query  *appreview.ReviewQuery
}

func NewReviewHandler(
	create *appreview.CreateReviewUseCase,
	update *appreview.UpdateReviewUseCase,
	remove *appreview.DeleteReviewUseCase,
	query *appreview.ReviewQuery,
) *ReviewHandler {
	return &ReviewHandler{create: create, update: update, remove: remove, query: query}
}

// Create 发表评价
// @Summary      发表评价
// @Description  只有下过包含该商品订单(任意状态)的用户才能评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "评价内容"
// @Success      201 {object} response.Response{data=appreview.ReviewDTO}
// @Failure      400 {object} response.ErrorResponse "评分或内容非法"
// @Failure      403 {object} response.ErrorResponse "未购买该商品"
// @Failure      404 {object} response.ErrorResponse "商品不存在"
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.create.Execute(c.Request.Context(), appreview.CreateReviewRequest{
		Actor:     middleware.Actor(c),
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List 全部评价
// @Summary      评价列表
// @Tags         评价
// @Produce      json
// @Success      200 {object} response.Response{data=[]appreview.ReviewDTO}
// @Router       /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	result, err := h.query.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 评价详情
// @Summary      评价详情
// @Tags         评价
// @Produce      json
// @Param        id path string true "评价ID"
// @Success      200 {object} response.Response{data=appreview.ReviewDTO}
// @Failure      404 {object} response.ErrorResponse "评价不存在"
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	result, err := h.query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ByProduct 商品的评价,最新的在前
// @Summary      商品评价
// @Tags         评价
// @Produce      json
// @Param        productId path string true "商品ID"
// @Success      200 {object} response.Response{data=[]appreview.ReviewDTO}
// @Router       /reviews/product/{productId} [get]
func (h *ReviewHandler) ByProduct(c *gin.Context) {
	result, err := h.query.ByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Averages 每个商品的平均分
// @Summary      商品平均分
// @Tags         评价
// @Produce      json
// @Success      200 {object} response.Response{data=[]appreview.AverageRatingDTO}
// @Router       /reviews/averages [get]
func (h *ReviewHandler) Averages(c *gin.Context) {
	result, err := h.query.Averages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Top 平均分最高的商品
// @Summary      高分商品
// @Tags         评价
// @Produce      json
// @Param        limit query int false "数量,最多100" default(10)
// @Success      200 {object} response.Response{data=[]appreview.TopRatedDTO}
// @Router       /reviews/top [get]
func (h *ReviewHandler) Top(c *gin.Context) {
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

// Update 修改评价(作者或管理员)
// @Summary      修改评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                  true "评价ID"
// @Param        request body dto.UpdateReviewRequest true "修改内容"
// @Success      200 {object} response.Response{data=appreview.ReviewDTO}
// @Failure      403 {object} response.ErrorResponse "无权限"
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.update.Execute(c.Request.Context(), appreview.UpdateReviewRequest{
		Actor:    middleware.Actor(c),
		ReviewID: c.Param("id"),
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除评价(作者或管理员)
// @Summary      删除评价
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "评价ID"
// @Success      200 {object} response.Response
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
