// Package fakes 应用层测试使用的内存仓储
//
// 行为与MySQL实现保持一致(错误类型、排序、库存守卫),只用于单元测试。
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/storefront/internal/domain/category"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/domain/user"
)

// TxManager 直接执行fn,记录调用次数
type TxManager struct {
	Calls int
}

func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// ProductRepo 内存商品仓储
type ProductRepo struct {
	mu       sync.Mutex
	products map[string]*product.Product
}

func NewProductRepo(products ...*product.Product) *ProductRepo {
	r := &ProductRepo{products: make(map[string]*product.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*product.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*product.Product, error) {
	return r.Filter(ctx, product.Filter{})
}

func (r *ProductRepo) Filter(ctx context.Context, f product.Filter) ([]*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*product.Product{}
	for _, p := range r.products {
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Price.LessThan(result[j].Price) })
	return result, nil
}

func (r *ProductRepo) TopReviewed(ctx context.Context, limit int) ([]*product.Product, error) {
	all, _ := r.Filter(ctx, product.Filter{})
	sort.SliceStable(all, func(i, j int) bool { return all[i].ReviewCount > all[j].ReviewCount })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return product.ErrProductNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepo) SetStock(ctx context.Context, id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if stock < 0 {
		return product.ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

// AdjustStock 与 stock + ? >= 0 守卫一致
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return product.ErrNegativeStock
	}
	p.Stock += delta
	return nil
}

func (r *ProductRepo) IncrReviewCount(ctx context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	p.ReviewCount += delta
	if p.ReviewCount < 0 {
		p.ReviewCount = 0
	}
	return nil
}

// CategoryRepo 内存分类仓储
type CategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*category.Category
	products   *ProductRepo
}

// NewCategoryRepo products用于Stats统计,可以为nil
func NewCategoryRepo(products *ProductRepo, categories ...*category.Category) *CategoryRepo {
	r := &CategoryRepo{categories: make(map[string]*category.Category), products: products}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return category.ErrDuplicateName
		}
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) FindByIDs(ctx context.Context, ids []string) ([]*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*category.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*category.Category{}
	for _, c := range r.categories {
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	for _, existing := range r.categories {
		if existing.ID != c.ID && existing.Name == c.Name {
			return category.ErrDuplicateName
		}
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *CategoryRepo) Stats(ctx context.Context) ([]category.Stat, error) {
	categories, _ := r.List(ctx)
	var products []*product.Product
	if r.products != nil {
		products, _ = r.products.List(ctx)
	}

	stats := make([]category.Stat, 0, len(categories))
	for _, c := range categories {
		var count int64
		for _, p := range products {
			if p.CategoryID == c.ID {
				count++
			}
		}
		stats = append(stats, category.Stat{CategoryID: c.ID, Name: c.Name, ProductCount: count})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].ProductCount > stats[j].ProductCount })
	return stats, nil
}

// UserRepo 内存用户仓储
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func NewUserRepo(users ...*user.User) *UserRepo {
	r := &UserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

// Create 邮箱重复时返回ErrEmailDuplicate,与MySQL唯一索引一致
func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailDuplicate
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepo) FindByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*user.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepo) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*user.User
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// OrderRepo 内存订单仓储
type OrderRepo struct {
	mu     sync.Mutex
	orders map[string]*order.Order
	// Now 统计时使用的当前时间
	Now func() time.Time
}

func NewOrderRepo(orders ...*order.Order) *OrderRepo {
	r := &OrderRepo{orders: make(map[string]*order.Order), Now: time.Now}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

// Count 已保存的订单数
func (r *OrderRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) Update(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool { return true }), nil
}

func (r *OrderRepo) ListByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.list(func(o *order.Order) bool { return o.UserID == userID }), nil
}

func (r *OrderRepo) list(keep func(o *order.Order) bool) []*order.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*order.Order{}
	for _, o := range r.orders {
		if keep(o) {
			result = append(result, cloneOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (r *OrderRepo) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		for _, item := range o.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *OrderRepo) StatsByStatus(ctx context.Context) ([]order.StatusStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byStatus := make(map[order.Status]*order.StatusStat)
	for _, o := range r.orders {
		st, ok := byStatus[o.Status]
		if !ok {
			st = &order.StatusStat{Status: o.Status}
			byStatus[o.Status] = st
		}
		st.Count++
		st.TotalAmount = st.TotalAmount.Add(o.Total)
	}
	stats := make([]order.StatusStat, 0, len(byStatus))
	for _, st := range byStatus {
		stats = append(stats, *st)
	}
	return stats, nil
}

func (r *OrderRepo) MonthlySales(ctx context.Context, since time.Time) ([]order.MonthlySales, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	type key struct{ year, month int }
	byMonth := make(map[key]*order.MonthlySales)
	for _, o := range r.orders {
		if o.Status == order.StatusCancelled || o.CreatedAt.Before(since) {
			continue
		}
		k := key{o.CreatedAt.Year(), int(o.CreatedAt.Month())}
		m, ok := byMonth[k]
		if !ok {
			m = &order.MonthlySales{Year: k.year, Month: k.month}
			byMonth[k] = m
		}
		m.TotalOrders++
		m.TotalSales = m.TotalSales.Add(o.Total)
	}
	sales := make([]order.MonthlySales, 0, len(byMonth))
	for _, m := range byMonth {
		sales = append(sales, *m)
	}
	return sales, nil
}

func (r *OrderRepo) Totals(ctx context.Context) (order.Totals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		count++
		sum = sum.Add(o.Total)
	}
	return order.NewTotals(sum, count), nil
}

func cloneOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	return &cp
}

// ReviewRepo 内存评价仓储,RatingStats关联ProductRepo
type ReviewRepo struct {
	mu       sync.Mutex
	reviews  map[string]*review.Review
	products *ProductRepo
	// CreateErr 模拟写入失败
	CreateErr error
}

func NewReviewRepo(products *ProductRepo, reviews ...*review.Review) *ReviewRepo {
	r := &ReviewRepo{reviews: make(map[string]*review.Review), products: products}
	for _, rv := range reviews {
		r.reviews[rv.ID] = rv
	}
	return r
}

// Count 已保存的评价数
func (r *ReviewRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews)
}

func (r *ReviewRepo) Create(ctx context.Context, rv *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *ReviewRepo) FindByID(ctx context.Context, id string) (*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *ReviewRepo) List(ctx context.Context) ([]*review.Review, error) {
	return r.list(func(rv *review.Review) bool { return true }), nil
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]*review.Review, error) {
	return r.list(func(rv *review.Review) bool { return rv.ProductID == productID }), nil
}

func (r *ReviewRepo) list(keep func(rv *review.Review) bool) []*review.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*review.Review{}
	for _, rv := range r.reviews {
		if keep(rv) {
			cp := *rv
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (r *ReviewRepo) IDsByProduct(ctx context.Context, productIDs []string) (map[string][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	result := make(map[string][]string)
	for _, rv := range r.reviews {
		if wanted[rv.ProductID] {
			result[rv.ProductID] = append(result[rv.ProductID], rv.ID)
		}
	}
	for _, ids := range result {
		sort.Strings(ids)
	}
	return result, nil
}

func (r *ReviewRepo) Update(ctx context.Context, rv *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[rv.ID]; !ok {
		return review.ErrReviewNotFound
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return review.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *ReviewRepo) RatingStats(ctx context.Context) ([]review.RatingStat, error) {
	all := r.list(func(rv *review.Review) bool { return true })

	type agg struct {
		sum   int
		count int64
	}
	byProduct := make(map[string]*agg)
	var productIDs []string
	for _, rv := range all {
		a, ok := byProduct[rv.ProductID]
		if !ok {
			a = &agg{}
			byProduct[rv.ProductID] = a
			productIDs = append(productIDs, rv.ProductID)
		}
		a.sum += rv.Rating
		a.count++
	}

	stats := make([]review.RatingStat, 0, len(productIDs))
	for _, productID := range productIDs {
		p, err := r.products.FindByID(context.Background(), productID)
		if err != nil {
			// 与JOIN语义一致,商品已删除的评价不参与统计
			continue
		}
		a := byProduct[productID]
		stats = append(stats, review.RatingStat{
			ProductID:   productID,
			ProductName: p.Name,
			Brand:       p.Brand,
			Price:       p.Price,
			AvgRating:   float64(a.sum) / float64(a.count),
			ReviewCount: a.count,
		})
	}
	return stats, nil
}
