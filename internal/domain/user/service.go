package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// hashCost bcrypt计算成本,测试中调低以加快速度
var hashCost = 12

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// RegisterParams 注册参数
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     Role // 公开注册固定为customer,管理员创建用户时可指定
}

// Service 用户领域服务
// 包含不属于单个实体的业务逻辑(密码加密、校验)
type Service interface {
	// Register 创建用户(注册或管理员创建)
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Login 邮箱密码登录
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验(8-20位,包含字母和数字)
// 3. 密码bcrypt加密
// 4. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	// 1. 邮箱格式校验
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	// 2. 密码强度校验
	if err := validatePasswordStrength(params.Password); err != nil {
		return nil, err
	}

	// 3. 姓名与角色校验
	name := strings.TrimSpace(params.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return nil, ErrInvalidName
	}
	if params.Role != "" && !params.Role.Valid() {
		return nil, ErrInvalidRole
	}

	// 4. 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), hashCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 5. 持久化(Repository负责转换邮箱重复错误)
	user := NewUser(name, email, string(hashedPassword), params.Phone, params.Role)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login 用户登录
// 邮箱不存在与密码错误返回同一个错误,避免暴露账号是否存在
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(user.Password, password); err != nil {
		return nil, err
	}

	return user, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validatePasswordStrength 8-20位,必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
