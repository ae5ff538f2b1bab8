package user

import (
	"time"

	"github.com/xiebiao/storefront/pkg/idgen"
)

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Address 收货地址(值对象)
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Profile 用户资料(可选)
type Profile struct {
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// User 用户实体(聚合根)
// Password保存bcrypt哈希值,不对外暴露
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Phone     string
	Role      Role
	Addresses []Address
	Profile   *Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码,role为空时默认为customer
func NewUser(name, email, hashedPassword, phone string, role Role) *User {
	if role == "" {
		role = RoleCustomer
	}
	now := time.Now()
	return &User{
		ID:        idgen.New(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Phone:     phone,
		Role:      role,
		Addresses: []Address{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AddAddress 追加收货地址
func (u *User) AddAddress(addr Address) error {
	if addr.Line1 == "" {
		return ErrAddressLine1Required
	}
	u.Addresses = append(u.Addresses, addr)
	u.UpdatedAt = time.Now()
	return nil
}

// RemoveAddress 按下标删除收货地址,其余地址保持原顺序
func (u *User) RemoveAddress(index int) error {
	if index < 0 || index >= len(u.Addresses) {
		return ErrAddressIndexOutOfRange
	}
	u.Addresses = append(u.Addresses[:index:index], u.Addresses[index+1:]...)
	u.UpdatedAt = time.Now()
	return nil
}

// UpdateProfile 更新基本资料,空字符串表示不修改
func (u *User) UpdateProfile(name, phone string, profile *Profile) {
	if name != "" {
		u.Name = name
	}
	if phone != "" {
		u.Phone = phone
	}
	if profile != nil {
		u.Profile = profile
	}
	u.UpdatedAt = time.Now()
}
