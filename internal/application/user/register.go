package user

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// RegisterUseCase 用户注册用例(公开接口,角色固定为customer)
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     user.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

// CreateUserUseCase 管理员创建用户,可以指定角色
type CreateUserUseCase struct {
	userService user.Service
}

// NewCreateUserUseCase 创建用例
func NewCreateUserUseCase(userService user.Service) *CreateUserUseCase {
	return &CreateUserUseCase{userService: userService}
}

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Actor    user.Actor
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// Execute 执行创建
func (uc *CreateUserUseCase) Execute(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	if !req.Actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}
