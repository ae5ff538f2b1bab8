package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
// 负责领域实体与GORM模型之间的转换,并把数据库错误转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 邮箱唯一性由UNIQUE索引保证,Duplicate entry转换为ErrEmailDuplicate
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var model UserModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	var models []UserModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询用户失败")
	}
	return toUserEntities(models), nil
}

// FindByEmail 邮箱字段有UNIQUE索引
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	if err := dbFrom(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	var (
		models []UserModel
		total  int64
	)

	query := dbFrom(ctx, r.db).Model(&UserModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户总数失败")
	}

	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}

	return toUserEntities(models), total, nil
}

// Update 更新资料字段,邮箱与密码不在此处修改
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	result := dbFrom(ctx, r.db).Model(&UserModel{ID: u.ID}).
		Select("name", "phone", "role", "addresses", "profile", "updated_at").
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Delete(&UserModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Addresses: u.Addresses,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserEntity(model *UserModel) *user.User {
	addresses := model.Addresses
	if addresses == nil {
		addresses = []user.Address{}
	}
	return &user.User{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Password:  model.Password,
		Phone:     model.Phone,
		Role:      user.Role(model.Role),
		Addresses: addresses,
		Profile:   model.Profile,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toUserEntities(models []UserModel) []*user.User {
	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users
}
