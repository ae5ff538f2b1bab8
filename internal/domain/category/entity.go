package category

import (
	"strings"
	"time"

	"github.com/xiebiao/storefront/pkg/idgen"
)

// Category 商品分类,名称全局唯一
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stat 分类下的商品数量
type Stat struct {
	CategoryID   string
	Name         string
	ProductCount int64
}

// NewCategory 创建分类
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	now := time.Now()
	return &Category{
		ID:          idgen.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update 修改名称与描述,nil表示不修改
func (c *Category) Update(name, description *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return ErrNameRequired
		}
		c.Name = trimmed
	}
	if description != nil {
		c.Description = *description
	}
	c.UpdatedAt = time.Now()
	return nil
}
