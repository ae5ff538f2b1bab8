package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/storefront/internal/application/fakes"
	"github.com/xiebiao/storefront/internal/domain/event"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

type fixture struct {
	products *fakes.ProductRepo
	reviews  *fakes.ReviewRepo
	orders   *fakes.OrderRepo
	users    *fakes.UserRepo
	tx       *fakes.TxManager
	events   *event.Recorder
	buyer    *user.User
	lamp     *product.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	buyer := user.NewUser("Bob", "bob@example.com", "hash", "", user.RoleCustomer)
	lamp, err := product.NewProduct("Lamp", "", idgen.New(), decimal.RequireFromString("25.00"), 3, "Lumo")
	require.NoError(t, err)

	products := fakes.NewProductRepo(lamp)
	// 已取消的订单同样具备评价资格
	purchase := order.NewOrder(buyer.ID, "card", []order.Item{{ProductID: lamp.ID, Quantity: 1, Subtotal: lamp.Price}})
	purchase.Status = order.StatusCancelled

	return &fixture{
		products: products,
		reviews:  fakes.NewReviewRepo(products),
		orders:   fakes.NewOrderRepo(purchase),
		users:    fakes.NewUserRepo(buyer),
		tx:       &fakes.TxManager{},
		events:   &event.Recorder{},
		buyer:    buyer,
		lamp:     lamp,
	}
}

func (f *fixture) buyerActor() user.Actor {
	return user.Actor{ID: f.buyer.ID, Role: user.RoleCustomer}
}

func (f *fixture) createUseCase() *CreateReviewUseCase {
	return NewCreateReviewUseCase(f.reviews, f.products, f.orders, f.tx, f.events, zap.NewNop())
}

func (f *fixture) reviewCount(t *testing.T) int {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), f.lamp.ID)
	require.NoError(t, err)
	return p.ReviewCount
}

func TestCreateReview(t *testing.T) {
	f := newFixture(t)

	dto, err := f.createUseCase().Execute(context.Background(), CreateReviewRequest{
		Actor: f.buyerActor(), ProductID: f.lamp.ID, Rating: 5, Comment: " 很亮 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "很亮", dto.Comment)
	assert.Equal(t, 1, f.reviews.Count())
	assert.Equal(t, 1, f.reviewCount(t))
	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, []string{event.ReviewCreated}, f.events.Types())
}

func TestCreateReview_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		req   func(f *fixture) CreateReviewRequest
		check func(t *testing.T, err error)
	}{
		{
			name: "未购买",
			req: func(f *fixture) CreateReviewRequest {
				stranger := user.Actor{ID: idgen.New(), Role: user.RoleCustomer}
				return CreateReviewRequest{Actor: stranger, ProductID: f.lamp.ID, Rating: 4}
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, review.ErrNotPurchased)
				assert.Equal(t, 403, apperrors.GetAppError(err).HTTPStatus())
			},
		},
		{
			name: "商品不存在",
			req: func(f *fixture) CreateReviewRequest {
				return CreateReviewRequest{Actor: f.buyerActor(), ProductID: idgen.New(), Rating: 4}
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, product.ErrProductNotFound) },
		},
		{
			name: "评分越界",
			req: func(f *fixture) CreateReviewRequest {
				return CreateReviewRequest{Actor: f.buyerActor(), ProductID: f.lamp.ID, Rating: 6}
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, review.ErrInvalidRating) },
		},
		{
			name: "商品ID非法",
			req: func(f *fixture) CreateReviewRequest {
				return CreateReviewRequest{Actor: f.buyerActor(), ProductID: "lamp", Rating: 3}
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, apperrors.ErrInvalidID) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.createUseCase().Execute(context.Background(), tt.req(f))
			require.Error(t, err)
			tt.check(t, err)

			assert.Equal(t, 0, f.reviews.Count())
			assert.Equal(t, 0, f.reviewCount(t))
			assert.Empty(t, f.events.Events)
		})
	}
}

func TestCreateReview_WriteFailure(t *testing.T) {
	f := newFixture(t)
	f.reviews.CreateErr = errors.New("db down")

	_, err := f.createUseCase().Execute(context.Background(), CreateReviewRequest{
		Actor: f.buyerActor(), ProductID: f.lamp.ID, Rating: 4,
	})
	require.Error(t, err)
	assert.Equal(t, 0, f.reviewCount(t), "评价写入失败时不应增加评价数")
	assert.Empty(t, f.events.Events)
}

func TestUpdateAndDeleteReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.createUseCase().Execute(ctx, CreateReviewRequest{
		Actor: f.buyerActor(), ProductID: f.lamp.ID, Rating: 2, Comment: "一般",
	})
	require.NoError(t, err)

	update := NewUpdateReviewUseCase(f.reviews)
	del := NewDeleteReviewUseCase(f.reviews, f.products, f.tx, f.events, zap.NewNop())
	stranger := user.Actor{ID: idgen.New(), Role: user.RoleCustomer}

	t.Run("他人不能修改", func(t *testing.T) {
		rating := 1
		_, err := update.Execute(ctx, UpdateReviewRequest{Actor: stranger, ReviewID: created.ID, Rating: &rating})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("作者修改评分", func(t *testing.T) {
		rating := 4
		dto, err := update.Execute(ctx, UpdateReviewRequest{Actor: f.buyerActor(), ReviewID: created.ID, Rating: &rating})
		require.NoError(t, err)
		assert.Equal(t, 4, dto.Rating)
		assert.Equal(t, "一般", dto.Comment)
	})

	t.Run("非法评分不修改", func(t *testing.T) {
		rating := 0
		_, err := update.Execute(ctx, UpdateReviewRequest{Actor: f.buyerActor(), ReviewID: created.ID, Rating: &rating})
		assert.ErrorIs(t, err, review.ErrInvalidRating)

		stored, err := f.reviews.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, stored.Rating)
	})

	t.Run("未提供修改内容", func(t *testing.T) {
		_, err := update.Execute(ctx, UpdateReviewRequest{Actor: f.buyerActor(), ReviewID: created.ID})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
	})

	t.Run("他人不能删除", func(t *testing.T) {
		assert.ErrorIs(t, del.Execute(ctx, stranger, created.ID), apperrors.ErrForbidden)
	})

	t.Run("管理员删除并减少评价数", func(t *testing.T) {
		admin := user.Actor{ID: idgen.New(), Role: user.RoleAdmin}
		require.NoError(t, del.Execute(ctx, admin, created.ID))
		assert.Equal(t, 0, f.reviews.Count())
		assert.Equal(t, 0, f.reviewCount(t))
		assert.Contains(t, f.events.Types(), event.ReviewDeleted)

		assert.ErrorIs(t, del.Execute(ctx, admin, created.ID), review.ErrReviewNotFound)
	})
}

func TestReviewQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older, err := review.NewReview(f.buyer.ID, f.lamp.ID, 3, "old")
	require.NoError(t, err)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer, err := review.NewReview(f.buyer.ID, f.lamp.ID, 5, "new")
	require.NoError(t, err)
	require.NoError(t, f.reviews.Create(ctx, older))
	require.NoError(t, f.reviews.Create(ctx, newer))

	q := NewReviewQuery(f.reviews, f.products, f.users)

	dtos, err := q.ByProduct(ctx, f.lamp.ID)
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "new", dtos[0].Comment)
	require.NotNil(t, dtos[0].User)
	assert.Equal(t, "Bob", dtos[0].User.Name)

	_, err = q.ByProduct(ctx, idgen.New())
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	_, err = q.Get(ctx, "x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)

	avgs, err := q.Averages(ctx)
	require.NoError(t, err)
	require.Len(t, avgs, 1)
	assert.Equal(t, 4.0, avgs[0].AvgRating)
	assert.Equal(t, int64(2), avgs[0].ReviewCount)
	assert.Equal(t, "Lamp", avgs[0].ProductName)

	top, err := q.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Lumo", top[0].Brand)
	assert.Equal(t, "25", top[0].Price.String())
}
