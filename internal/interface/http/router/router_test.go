package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	"github.com/xiebiao/storefront/internal/application/catalog"
	"github.com/xiebiao/storefront/internal/application/fakes"
	apporder "github.com/xiebiao/storefront/internal/application/order"
	appreview "github.com/xiebiao/storefront/internal/application/review"
	appuser "github.com/xiebiao/storefront/internal/application/user"
	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/user"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/idgen"
	"github.com/xiebiao/storefront/pkg/jwt"
)

// memSessions 内存会话与黑名单
type memSessions struct {
	mu        sync.Mutex
	blacklist map[string]bool
}

func (s *memSessions) SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error {
	return nil
}

func (s *memSessions) DeleteSession(ctx context.Context, userID string) error {
	return nil
}

func (s *memSessions) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[token] = true
	return nil
}

func (s *memSessions) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blacklist[token], nil
}

// memCarts 内存购物车
type memCarts struct {
	mu    sync.Mutex
	carts map[string]map[string]int
}

func (s *memCarts) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make(map[string]int)
	for k, v := range s.carts[userID] {
		items[k] = v
	}
	return &cart.Cart{UserID: userID, Items: items}, nil
}

func (s *memCarts) Add(ctx context.Context, userID, productID string, quantity int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[string]int)
	}
	s.carts[userID][productID] += quantity
	return s.carts[userID][productID], nil
}

func (s *memCarts) Set(ctx context.Context, userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[userID][productID]; !ok {
		return cart.ErrItemNotInCart
	}
	s.carts[userID][productID] = quantity
	return nil
}

func (s *memCarts) Remove(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[userID][productID]; !ok {
		return cart.ErrItemNotInCart
	}
	delete(s.carts[userID], productID)
	return nil
}

func (s *memCarts) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

func (s *memCarts) Restore(ctx context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.UserID] = c.Items
	return nil
}

type app struct {
	engine   *gin.Engine
	jwt      *jwt.Manager
	orders   *fakes.OrderRepo
	reviews  *fakes.ReviewRepo
	alice    *user.User
	admin    *user.User
	pen      *product.Product
	ink      *product.Product
	redisErr error
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &app{
		jwt:   jwt.NewManager("router-test-secret", time.Hour, 24*time.Hour),
		alice: user.NewUser("Alice", "alice@example.com", "hash", "", user.RoleCustomer),
		admin: user.NewUser("Root", "root@example.com", "hash", "", user.RoleAdmin),
	}
	a.pen = mustProduct(t, "Pen", "19.995")
	a.ink = mustProduct(t, "Ink", "10.005")

	logger := zap.NewNop()
	publisher := event.NoopPublisher{}
	products := fakes.NewProductRepo(a.pen, a.ink)
	categories := fakes.NewCategoryRepo(products)
	users := fakes.NewUserRepo(a.alice, a.admin)
	a.orders = fakes.NewOrderRepo()
	a.reviews = fakes.NewReviewRepo(products)
	tx := &fakes.TxManager{}
	sessions := &memSessions{blacklist: make(map[string]bool)}
	carts := &memCarts{carts: make(map[string]map[string]int)}

	userService := user.NewService(users)
	projector := apporder.NewProjector(users, products)
	policy := order.NewStatusPolicy(true)
	createOrder := apporder.NewCreateOrderUseCase(a.orders, products, users, projector, publisher, logger)

	h := &Handlers{
		Auth: handler.NewAuthHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, a.jwt, sessions, logger),
			appuser.NewLogoutUseCase(sessions, a.jwt),
			appuser.NewRefreshTokenUseCase(a.jwt),
		),
		User: handler.NewUserHandler(
			appuser.NewGetUserUseCase(users),
			appuser.NewListUsersUseCase(users),
			appuser.NewCreateUserUseCase(userService),
			appuser.NewUpdateUserUseCase(users),
			appuser.NewDeleteUserUseCase(users, carts, sessions, publisher, logger),
			appuser.NewAddAddressUseCase(users),
			appuser.NewRemoveAddressUseCase(users),
		),
		Category: handler.NewCategoryHandler(catalog.NewCategoryService(categories)),
		Product: handler.NewProductHandler(
			catalog.NewProductQuery(products, categories, a.reviews),
			catalog.NewCreateProductUseCase(products, categories),
			catalog.NewUpdateProductUseCase(products, categories),
			catalog.NewDeleteProductUseCase(products),
			catalog.NewUpdateStockUseCase(products),
		),
		Order: handler.NewOrderHandler(
			createOrder,
			apporder.NewUpdateOrderUseCase(a.orders, products, policy, projector, publisher),
			apporder.NewUpdateOrderStatusUseCase(a.orders, policy, projector, publisher),
			apporder.NewDeleteOrderUseCase(a.orders, publisher),
			apporder.NewOrderQuery(a.orders, projector),
			apporder.NewOrderStatsUseCase(a.orders, 6),
		),
		Review: handler.NewReviewHandler(
			appreview.NewCreateReviewUseCase(a.reviews, products, a.orders, tx, publisher, logger),
			appreview.NewUpdateReviewUseCase(a.reviews),
			appreview.NewDeleteReviewUseCase(a.reviews, products, tx, publisher, logger),
			appreview.NewReviewQuery(a.reviews, products, users),
		),
		Cart: handler.NewCartHandler(appcart.NewCartService(carts, products, createOrder, logger)),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"mysql": func(ctx context.Context) error { return nil },
			"redis": func(ctx context.Context) error { return a.redisErr },
		}),
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	a.engine = New(cfg, logger, middleware.NewAuthMiddleware(a.jwt, sessions), h)
	return a
}

func mustProduct(t *testing.T, name, price string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(name, "", idgen.New(), decimal.RequireFromString(price), 10, "Acme")
	require.NoError(t, err)
	return p
}

func (a *app) token(t *testing.T, u *user.User) string {
	t.Helper()
	pair, err := a.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	require.NoError(t, err)
	return pair.AccessToken
}

func (a *app) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    int             `json:"code"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestOpsRoutes(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	a.redisErr = errors.New("connection refused")
	w = a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis")

	w = a.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAuthGuards(t *testing.T) {
	a := newApp(t)
	customer := a.token(t, a.alice)
	admin := a.token(t, a.admin)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"公开商品列表", http.MethodGet, "/api/v1/products", "", http.StatusOK},
		{"公开评价列表", http.MethodGet, "/api/v1/reviews", "", http.StatusOK},
		{"订单需要登录", http.MethodPost, "/api/v1/orders", "", http.StatusUnauthorized},
		{"无效Token", http.MethodGet, "/api/v1/users/me", "not-a-jwt", http.StatusUnauthorized},
		{"当前用户", http.MethodGet, "/api/v1/users/me", customer, http.StatusOK},
		{"用户列表需要管理员", http.MethodGet, "/api/v1/users", customer, http.StatusForbidden},
		{"管理员查看用户列表", http.MethodGet, "/api/v1/users", admin, http.StatusOK},
		{"订单统计需要管理员", http.MethodGet, "/api/v1/orders/stats", customer, http.StatusForbidden},
		{"管理员订单统计", http.MethodGet, "/api/v1/orders/stats", admin, http.StatusOK},
		{"顾客不能删除商品", http.MethodDelete, "/api/v1/products/" + a.pen.ID, customer, http.StatusForbidden},
		{"购物车需要登录", http.MethodGet, "/api/v1/cart", "", http.StatusUnauthorized},
		{"查看他人资料", http.MethodGet, "/api/v1/users/" + a.admin.ID, customer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "passw0rd123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "passw0rd123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "bob@example.com", "password": "passw0rd123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &login))
	require.NotEmpty(t, login.AccessToken)

	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/v1/users/me", login.AccessToken, nil).Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/logout", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 登出后Token进入黑名单
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/users/me", login.AccessToken, nil).Code)
}

func TestCreateOrderAndReview(t *testing.T) {
	a := newApp(t)
	token := a.token(t, a.alice)

	t.Run("未购买不能评价", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/reviews", token, map[string]interface{}{
			"product_id": a.pen.ID, "rating": 5, "comment": "好用",
		})
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	t.Run("空明细参数错误", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
			"items": []interface{}{}, "payment_method": "card",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, a.orders.Count())
	})

	t.Run("商品不存在", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
			"items":          []map[string]interface{}{{"product_id": idgen.New(), "quantity": 1}},
			"payment_method": "card",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 0, a.orders.Count())
	})

	t.Run("下单成功", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
			"items": []map[string]interface{}{
				{"product_id": a.pen.ID, "quantity": 1},
				{"product_id": a.ink.ID, "quantity": 2},
			},
			"payment_method": "card",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var view struct {
			ID     string          `json:"id"`
			Total  decimal.Decimal `json:"total"`
			Status string          `json:"status"`
		}
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
		assert.True(t, decimal.RequireFromString("40.01").Equal(view.Total), view.Total.String())
		assert.Equal(t, "pending", view.Status)

		// 顾客不能修改状态
		w = a.do(t, http.MethodPatch, "/api/v1/orders/"+view.ID+"/status", token, map[string]string{"status": "paid"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("购买后可以评价", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/reviews", token, map[string]interface{}{
			"product_id": a.pen.ID, "rating": 5, "comment": "好用",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, 1, a.reviews.Count())

		w = a.do(t, http.MethodGet, "/api/v1/reviews/product/"+a.pen.ID, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "好用")
	})

	t.Run("评分越界", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/reviews", token, map[string]interface{}{
			"product_id": a.ink.ID, "rating": 6,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartCheckout(t *testing.T) {
	a := newApp(t)
	token := a.token(t, a.alice)

	w := a.do(t, http.MethodPost, "/api/v1/cart/checkout", token, map[string]string{"payment_method": "card"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": a.ink.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/v1/cart/checkout", token, map[string]string{"payment_method": "card"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, a.orders.Count())

	w = a.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var c struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &c))
	assert.Empty(t, c.Items)
}
