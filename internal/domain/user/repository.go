package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层,实现在infrastructure/persistence/mysql
type Repository interface {
	// Create 创建用户,邮箱已存在时返回ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在时返回ErrUserNotFound
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByIDs 批量查询,不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)

	// FindByEmail 不存在时返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List 分页查询,按创建时间倒序
	List(ctx context.Context, page, pageSize int) ([]*User, int64, error)

	// Update 更新基本资料、地址和资料
	Update(ctx context.Context, user *User) error

	// Delete 删除用户
	Delete(ctx context.Context, id string) error
}
