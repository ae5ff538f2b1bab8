package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/user"
)

// UserSummary 订单中附带的下单用户信息
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductSummary 订单明细中附带的商品信息(当前价格,非下单时价格)
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItemView 订单明细
type OrderItemView struct {
	ProductID string          `json:"product_id"`
	Product   *ProductSummary `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderView 订单视图
type OrderView struct {
	ID            string          `json:"id"`
	OrderNo       string          `json:"order_no"`
	UserID        string          `json:"user_id"`
	User          *UserSummary    `json:"user,omitempty"`
	Items         []OrderItemView `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Projector 为订单附加用户与商品展示字段
// 用户和商品各一次批量查询,两次查询并发执行
type Projector struct {
	userRepo    user.Repository
	productRepo product.Repository
}

// NewProjector 创建订单视图投影
func NewProjector(userRepo user.Repository, productRepo product.Repository) *Projector {
	return &Projector{userRepo: userRepo, productRepo: productRepo}
}

// One 投影单个订单
func (p *Projector) One(ctx context.Context, o *order.Order) (*OrderView, error) {
	views, err := p.Many(ctx, []*order.Order{o})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Many 投影多个订单,保持输入顺序
// 已删除的用户或商品不报错,对应字段为空
func (p *Projector) Many(ctx context.Context, orders []*order.Order) ([]*OrderView, error) {
	if len(orders) == 0 {
		return []*OrderView{}, nil
	}

	userIDs := make([]string, 0, len(orders))
	var productIDs []string
	seenUser := make(map[string]struct{}, len(orders))
	seenProduct := make(map[string]struct{})
	for _, o := range orders {
		if _, ok := seenUser[o.UserID]; !ok {
			seenUser[o.UserID] = struct{}{}
			userIDs = append(userIDs, o.UserID)
		}
		for _, id := range o.ProductIDs() {
			if _, ok := seenProduct[id]; !ok {
				seenProduct[id] = struct{}{}
				productIDs = append(productIDs, id)
			}
		}
	}

	var (
		users    []*user.User
		products []*product.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = p.userRepo.FindByIDs(gctx, userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = p.productRepo.FindByIDs(gctx, productIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userMap := make(map[string]*UserSummary, len(users))
	for _, u := range users {
		userMap[u.ID] = &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	productMap := make(map[string]*ProductSummary, len(products))
	for _, pr := range products {
		productMap[pr.ID] = &ProductSummary{ID: pr.ID, Name: pr.Name, Price: pr.Price}
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		items := make([]OrderItemView, len(o.Items))
		for j, item := range o.Items {
			items[j] = OrderItemView{
				ProductID: item.ProductID,
				Product:   productMap[item.ProductID],
				Quantity:  item.Quantity,
				Subtotal:  item.Subtotal,
			}
		}
		views[i] = &OrderView{
			ID:            o.ID,
			OrderNo:       o.OrderNo,
			UserID:        o.UserID,
			User:          userMap[o.UserID],
			Items:         items,
			Total:         o.Total,
			PaymentMethod: o.PaymentMethod,
			Status:        string(o.Status),
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
		}
	}
	return views, nil
}
