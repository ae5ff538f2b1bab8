package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/storefront/internal/application/user"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// UserHandler 用户管理
type UserHandler struct {
	getUser       *appuser.GetUserUseCase
	listUsers     *appuser.ListUsersUseCase
	createUser    *appuser.CreateUserUseCase
	updateUser    *appuser.UpdateUserUseCase
	deleteUser    *appuser.DeleteUserUseCase
	addAddress    *appuser.AddAddressUseCase
	removeAddress *appuser.RemoveAddressUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	getUser *appuser.GetUserUseCase,
	listUsers *appuser.ListUsersUseCase,
	createUser *appuser.CreateUserUseCase,
	updateUser *appuser.UpdateUserUseCase,
	deleteUser *appuser.DeleteUserUseCase,
	addAddress *appuser.AddAddressUseCase,
	removeAddress *appuser.RemoveAddressUseCase,
) *UserHandler {
	return &UserHandler{
		getUser:       getUser,
		listUsers:     listUsers,
		createUser:    createUser,
		updateUser:    updateUser,
		deleteUser:    deleteUser,
		addAddress:    addAddress,
		removeAddress: removeAddress,
	}
}

// Me 当前登录用户
// @Summary      当前用户信息
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      401 {object} response.ErrorResponse "未登录"
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	result, err := h.getUser.Execute(c.Request.Context(), middleware.Actor(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List 用户列表(管理员)
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=appuser.ListUsersResponse}
// @Failure      403 {object} response.ErrorResponse "非管理员"
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.listUsers.Execute(c.Request.Context(), appuser.ListUsersRequest{Page: q.Page, PageSize: q.PageSize})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 创建用户(管理员,可指定角色)
// @Summary      创建用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      201 {object} response.Response{data=appuser.UserDTO}
// @Failure      400 {object} response.ErrorResponse "参数错误"
// @Failure      403 {object} response.ErrorResponse "非管理员"
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.createUser.Execute(c.Request.Context(), appuser.CreateUserRequest{
		Actor:    middleware.Actor(c),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 用户详情(本人或管理员)
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      403 {object} response.ErrorResponse "无权限"
// @Failure      404 {object} response.ErrorResponse "用户不存在"
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	result, err := h.getUser.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 更新用户(本人或管理员,角色只能由管理员修改)
// @Summary      更新用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "用户ID"
// @Param        request body dto.UpdateUserRequest true "更新内容"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      403 {object} response.ErrorResponse "无权限"
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.updateUser.Execute(c.Request.Context(), appuser.UpdateUserRequest{
		Actor:   middleware.Actor(c),
		UserID:  c.Param("id"),
		Name:    req.Name,
		Phone:   req.Phone,
		Role:    req.Role,
		Profile: req.Profile,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除用户(管理员),同时清空其购物车和会话
// @Summary      删除用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.ErrorResponse "用户不存在"
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.deleteUser.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AddAddress 添加收货地址
// @Summary      添加收货地址
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string             true "用户ID"
// @Param        request body dto.AddressRequest true "地址"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Router       /users/{id}/addresses [post]
func (h *UserHandler) AddAddress(c *gin.Context) {
	var req dto.AddressRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.addAddress.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.ToAddress())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveAddress 按下标删除收货地址
// @Summary      删除收货地址
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string true "用户ID"
// @Param        index path int    true "地址下标(从0开始)"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      400 {object} response.ErrorResponse "下标越界"
// @Router       /users/{id}/addresses/{index} [delete]
func (h *UserHandler) RemoveAddress(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	result, err := h.removeAddress.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
