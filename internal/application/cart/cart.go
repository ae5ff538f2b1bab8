package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apporder "github.com/xiebiao/storefront/internal/application/order"
	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
	"github.com/xiebiao/storefront/pkg/metrics"
)

// LineDTO 购物车中的一行,商品已下架时product为空
type LineDTO struct {
	ProductID string                   `json:"product_id"`
	Product   *apporder.ProductSummary `json:"product,omitempty"`
	Quantity  int                      `json:"quantity"`
	Subtotal  decimal.Decimal          `json:"subtotal"`
}

// CartDTO 购物车,金额按当前商品价格计算
type CartDTO struct {
	UserID string          `json:"user_id"`
	Items  []LineDTO       `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// OrderPlacer 结算时下单
type OrderPlacer interface {
	Execute(ctx context.Context, req apporder.CreateOrderRequest) (*apporder.OrderView, error)
}

// CartService 购物车用例,只操作当前登录用户的购物车
type CartService struct {
	store       cart.Store
	productRepo product.Repository
	placer      OrderPlacer
	logger      *zap.Logger
}

func NewCartService(store cart.Store, productRepo product.Repository, placer OrderPlacer, logger *zap.Logger) *CartService {
	return &CartService{store: store, productRepo: productRepo, placer: placer, logger: logger}
}

// Get 读取购物车并按当前价格计算小计
func (s *CartService) Get(ctx context.Context, userID string) (*CartDTO, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, c)
}

// Add 加入购物车,数量累加
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*CartDTO, error) {
	if err := validateLine(productID, quantity); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := s.store.Add(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// SetQuantity 修改已在购物车中的商品数量
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*CartDTO, error) {
	if err := validateLine(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) (*CartDTO, error) {
	if !idgen.Valid(productID) {
		return nil, apperrors.ErrInvalidID
	}
	if err := s.store.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.store.Clear(ctx, userID)
}

// Checkout 结算
// 1. 购物车为空返回ErrEmptyCart
// 2. 按购物车明细下单(定价、商品校验由下单用例完成)
// 3. 下单成功后清空购物车,清空失败只记录日志
func (s *CartService) Checkout(ctx context.Context, actor user.Actor, paymentMethod string) (*apporder.OrderView, error) {
	c, err := s.store.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	lines := c.Lines()
	items := make([]order.LineRequest, 0, len(lines))
	for _, line := range lines {
		items = append(items, order.LineRequest{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	view, err := s.placer.Execute(ctx, apporder.CreateOrderRequest{
		Actor:         actor,
		Items:         items,
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		return nil, err
	}
	metrics.CartCheckoutsTotal.Inc()

	if err := s.store.Clear(ctx, actor.ID); err != nil {
		s.logger.Warn("结算后清空购物车失败",
			zap.String("user_id", actor.ID),
			zap.String("order_id", view.ID),
			zap.Error(err),
		)
	}
	return view, nil
}

func (s *CartService) project(ctx context.Context, c *cart.Cart) (*CartDTO, error) {
	lines := c.Lines()
	dto := &CartDTO{UserID: c.UserID, Items: make([]LineDTO, 0, len(lines)), Total: decimal.Zero}
	if len(lines) == 0 {
		return dto, nil
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range lines {
		item := LineDTO{ProductID: line.ProductID, Quantity: line.Quantity, Subtotal: decimal.Zero}
		if p, ok := byID[line.ProductID]; ok {
			item.Product = &apporder.ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price}
			item.Subtotal = order.Subtotal(p.Price, line.Quantity)
		}
		dto.Total = dto.Total.Add(item.Subtotal)
		dto.Items = append(dto.Items, item)
	}
	return dto, nil
}

func validateLine(productID string, quantity int) error {
	if !idgen.Valid(productID) {
		return apperrors.ErrInvalidID.WithDetails("product_id=" + productID)
	}
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}
	return nil
}
