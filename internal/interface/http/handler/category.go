package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/storefront/internal/application/catalog"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/pkg/response"
)

// CategoryHandler 分类管理
type CategoryHandler struct {
	service *catalog.CategoryService
}

func NewCategoryHandler(service *catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]catalog.CategoryDTO}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Stats 各分类商品数
// @Summary      分类统计
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]catalog.CategoryStatDTO}
// @Router       /categories/stats [get]
func (h *CategoryHandler) Stats(c *gin.Context) {
	result, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response{data=catalog.CategoryDTO}
// @Failure      404 {object} response.ErrorResponse "分类不存在"
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 创建分类(管理员)
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=catalog.CategoryDTO}
// @Failure      400 {object} response.ErrorResponse "名称重复"
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 更新分类(管理员)
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                    true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "更新内容"
// @Success      200 {object} response.Response{data=catalog.CategoryDTO}
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除分类(管理员),不级联删除商品
// @Summary      删除分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
