package cart

import (
	"context"
	"sort"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// Line 购物车中的一行
type Line struct {
	ProductID string
	Quantity  int
}

// Cart 用户购物车,商品ID到数量的映射
type Cart struct {
	UserID string
	Items  map[string]int
}

// Lines 按商品ID排序的明细
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.Items))
	for productID, qty := range c.Items {
		lines = append(lines, Line{ProductID: productID, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

var (
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "商品数量必须为正整数")

	ErrItemNotInCart = apperrors.New(apperrors.ErrCodeNotFound, "购物车中没有该商品")
)

// Store 购物车存储(Redis Hash实现)
type Store interface {
	// Get 读取购物车,不存在时返回空购物车
	Get(ctx context.Context, userID string) (*Cart, error)

	// Add 累加数量,返回累加后的数量
	Add(ctx context.Context, userID, productID string, quantity int) (int, error)

	// Set 设置数量,商品不在购物车中时返回ErrItemNotInCart
	Set(ctx context.Context, userID, productID string, quantity int) error

	// Remove 移除商品,商品不在购物车中时返回ErrItemNotInCart
	Remove(ctx context.Context, userID, productID string) error

	// Clear 清空购物车
	Clear(ctx context.Context, userID string) error

	// Restore 用快照覆盖购物车(Saga补偿使用)
	Restore(ctx context.Context, c *Cart) error
}
