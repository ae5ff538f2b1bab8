package dto

import "github.com/xiebiao/storefront/internal/domain/user"

// RegisterRequest 注册请求
// 密码强度(字母+数字)由领域服务校验
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"张三"`
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"passw0rd123"`
	Phone    string `json:"phone" binding:"omitempty,max=20" example:"13800138000"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required" example:"passw0rd123"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest 管理员创建用户
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"omitempty,oneof=customer admin" example:"customer"`
}

// UpdateUserRequest 更新用户,空字段不修改
type UpdateUserRequest struct {
	Name    string        `json:"name" binding:"omitempty,max=100"`
	Phone   string        `json:"phone" binding:"omitempty,max=20"`
	Role    string        `json:"role" binding:"omitempty,oneof=customer admin"`
	Profile *user.Profile `json:"profile"`
}

// AddressRequest 收货地址
type AddressRequest struct {
	Line1      string `json:"line1" binding:"required,max=200" example:"人民路1号"`
	Line2      string `json:"line2" binding:"omitempty,max=200"`
	City       string `json:"city" binding:"omitempty,max=100" example:"上海"`
	State      string `json:"state" binding:"omitempty,max=100"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=20" example:"200000"`
	Country    string `json:"country" binding:"omitempty,max=100" example:"CN"`
}

// ToAddress 转换为领域值对象
func (r AddressRequest) ToAddress() user.Address {
	return user.Address{
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

// PageQuery 分页参数
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
