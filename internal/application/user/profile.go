package user

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

// GetUserUseCase 查询用户(本人或管理员)
type GetUserUseCase struct {
	userRepo user.Repository
}

// NewGetUserUseCase 创建用例
func NewGetUserUseCase(userRepo user.Repository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

// Execute 执行查询
func (uc *GetUserUseCase) Execute(ctx context.Context, actor user.Actor, userID string) (*UserDTO, error) {
	u, err := loadAccessibleUser(ctx, uc.userRepo, actor, userID)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

// ListUsersUseCase 用户列表(管理员)
type ListUsersUseCase struct {
	userRepo user.Repository
}

// NewListUsersUseCase 创建用例
func NewListUsersUseCase(userRepo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// ListUsersRequest 分页参数,非法值取默认
type ListUsersRequest struct {
	Page     int
	PageSize int
}

// ListUsersResponse 分页结果
type ListUsersResponse struct {
	Users    []*UserDTO `json:"users"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// Execute 执行查询
func (uc *ListUsersUseCase) Execute(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	users, total, err := uc.userRepo.List(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	dtos := make([]*UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return &ListUsersResponse{Users: dtos, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// UpdateUserUseCase 更新用户资料(本人或管理员),角色只能由管理员修改
type UpdateUserUseCase struct {
	userRepo user.Repository
}

// NewUpdateUserUseCase 创建用例
func NewUpdateUserUseCase(userRepo user.Repository) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo}
}

// UpdateUserRequest 更新请求,空值表示不修改
type UpdateUserRequest struct {
	Actor   user.Actor
	UserID  string
	Name    string
	Phone   string
	Role    string
	Profile *user.Profile
}

// Execute 执行更新
func (uc *UpdateUserUseCase) Execute(ctx context.Context, req UpdateUserRequest) (*UserDTO, error) {
	u, err := loadAccessibleUser(ctx, uc.userRepo, req.Actor, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Role != "" {
		if !req.Actor.IsAdmin() {
			return nil, apperrors.ErrForbidden
		}
		role := user.Role(req.Role)
		if !role.Valid() {
			return nil, user.ErrInvalidRole
		}
		u.Role = role
	}
	u.UpdateProfile(req.Name, req.Phone, req.Profile)

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

// AddAddressUseCase 追加收货地址
type AddAddressUseCase struct {
	userRepo user.Repository
}

// NewAddAddressUseCase 创建用例
func NewAddAddressUseCase(userRepo user.Repository) *AddAddressUseCase {
	return &AddAddressUseCase{userRepo: userRepo}
}

// Execute 执行追加,返回更新后的用户
func (uc *AddAddressUseCase) Execute(ctx context.Context, actor user.Actor, userID string, addr user.Address) (*UserDTO, error) {
	u, err := loadAccessibleUser(ctx, uc.userRepo, actor, userID)
	if err != nil {
		return nil, err
	}
	if err := u.AddAddress(addr); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

// RemoveAddressUseCase 按下标删除收货地址
type RemoveAddressUseCase struct {
	userRepo user.Repository
}

// NewRemoveAddressUseCase 创建用例
func NewRemoveAddressUseCase(userRepo user.Repository) *RemoveAddressUseCase {
	return &RemoveAddressUseCase{userRepo: userRepo}
}

// Execute 执行删除,下标越界返回参数错误
func (uc *RemoveAddressUseCase) Execute(ctx context.Context, actor user.Actor, userID string, index int) (*UserDTO, error) {
	u, err := loadAccessibleUser(ctx, uc.userRepo, actor, userID)
	if err != nil {
		return nil, err
	}
	if err := u.RemoveAddress(index); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

// loadAccessibleUser 校验ID格式与访问权限后加载用户
// 先校验权限再查询,避免通过404探测其他用户是否存在
func loadAccessibleUser(ctx context.Context, repo user.Repository, actor user.Actor, userID string) (*user.User, error) {
	if !idgen.Valid(userID) {
		return nil, apperrors.ErrInvalidID
	}
	if !actor.CanAccess(userID) {
		return nil, apperrors.ErrForbidden
	}
	return repo.FindByID(ctx, userID)
}
