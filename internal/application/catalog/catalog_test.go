package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/application/fakes"
	"github.com/xiebiao/storefront/internal/domain/category"
	"github.com/xiebiao/storefront/internal/domain/product"
	"github.com/xiebiao/storefront/internal/domain/review"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/idgen"
)

type fixture struct {
	products   *fakes.ProductRepo
	categories *fakes.CategoryRepo
	reviews    *fakes.ReviewRepo
	books      *category.Category
	novel      *product.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	books, err := category.NewCategory("Books", "")
	require.NoError(t, err)
	novel, err := product.NewProduct("Novel", "", books.ID, decimal.RequireFromString("12.50"), 5, "Penguin")
	require.NoError(t, err)

	products := fakes.NewProductRepo(novel)
	return &fixture{
		products:   products,
		categories: fakes.NewCategoryRepo(products, books),
		reviews:    fakes.NewReviewRepo(products),
		books:      books,
		novel:      novel,
	}
}

func intPtr(v int) *int { return &v }

func TestUpdateStockUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewUpdateStockUseCase(f.products)
	ctx := context.Background()

	t.Run("增量导致负库存被拒绝", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateStockRequest{ID: f.novel.ID, Change: product.StockChange{Adjust: intPtr(-10)}})
		assert.ErrorIs(t, err, product.ErrNegativeStock)
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())

		p, _ := f.products.FindByID(ctx, f.novel.ID)
		assert.Equal(t, 5, p.Stock, "库存应保持不变")
	})

	t.Run("增量", func(t *testing.T) {
		resp, err := uc.Execute(ctx, UpdateStockRequest{ID: f.novel.ID, Change: product.StockChange{Adjust: intPtr(-3)}})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Stock)
	})

	t.Run("绝对值优先于增量", func(t *testing.T) {
		resp, err := uc.Execute(ctx, UpdateStockRequest{
			ID:     f.novel.ID,
			Change: product.StockChange{Stock: intPtr(40), Adjust: intPtr(-100)},
		})
		require.NoError(t, err)
		assert.Equal(t, 40, resp.Stock)
	})

	t.Run("未提供修改", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateStockRequest{ID: f.novel.ID})
		assert.ErrorIs(t, err, product.ErrStockChangeRequired)
	})

	t.Run("商品不存在", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateStockRequest{ID: idgen.New(), Change: product.StockChange{Stock: intPtr(1)}})
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("非法ID", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateStockRequest{ID: "42", Change: product.StockChange{Stock: intPtr(1)}})
		assert.ErrorIs(t, err, apperrors.ErrInvalidID)
	})
}

func TestCreateProductUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateProductUseCase(f.products, f.categories)
	ctx := context.Background()

	dto, err := uc.Execute(ctx, CreateProductRequest{
		Name: "Mug", CategoryID: f.books.ID, Price: decimal.RequireFromString("7.9900"), Stock: 3, Brand: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "Books", dto.Category.Name)
	assert.Empty(t, dto.ReviewIDs)

	_, err = uc.Execute(ctx, CreateProductRequest{Name: "Mug", CategoryID: idgen.New(), Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	_, err = uc.Execute(ctx, CreateProductRequest{Name: "Mug", CategoryID: f.books.ID, Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, product.ErrInvalidPrice)
}

func TestUpdateProductUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewUpdateProductUseCase(f.products, f.categories)
	ctx := context.Background()

	price := decimal.RequireFromString("15")
	dto, err := uc.Execute(ctx, UpdateProductRequest{ID: f.novel.ID, Patch: product.Patch{Price: &price}})
	require.NoError(t, err)
	assert.True(t, dto.Price.Equal(price))
	assert.Equal(t, "Novel", dto.Name)

	missing := idgen.New()
	_, err = uc.Execute(ctx, UpdateProductRequest{ID: f.novel.ID, Patch: product.Patch{CategoryID: &missing}})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	empty := " "
	_, err = uc.Execute(ctx, UpdateProductRequest{ID: f.novel.ID, Patch: product.Patch{Name: &empty}})
	assert.ErrorIs(t, err, product.ErrNameRequired)

	p, _ := f.products.FindByID(ctx, f.novel.ID)
	assert.Equal(t, "Novel", p.Name)
}

func TestProductQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cheap, err := product.NewProduct("Pen", "", f.books.ID, decimal.RequireFromString("1.20"), 1, "Bic")
	require.NoError(t, err)
	require.NoError(t, f.products.Create(ctx, cheap))

	rv, err := review.NewReview(idgen.New(), f.novel.ID, 5, "great")
	require.NoError(t, err)
	require.NoError(t, f.reviews.Create(ctx, rv))

	q := NewProductQuery(f.products, f.categories, f.reviews)

	t.Run("详情附带分类与评价ID", func(t *testing.T) {
		dto, err := q.Get(ctx, f.novel.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{rv.ID}, dto.ReviewIDs)
		assert.Equal(t, f.books.ID, dto.Category.ID)
	})

	t.Run("价格区间闭区间", func(t *testing.T) {
		lo := decimal.RequireFromString("1.20")
		hi := decimal.RequireFromString("12.50")
		dtos, err := q.Filter(ctx, FilterRequest{MinPrice: &lo, MaxPrice: &hi})
		require.NoError(t, err)
		assert.Len(t, dtos, 2)

		dtos, err = q.Filter(ctx, FilterRequest{Brand: "Bic"})
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, "Pen", dtos[0].Name)
	})

	t.Run("最小价大于最大价", func(t *testing.T) {
		lo := decimal.NewFromInt(10)
		hi := decimal.NewFromInt(1)
		_, err := q.Filter(ctx, FilterRequest{MinPrice: &lo, MaxPrice: &hi})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidParams))
	})
}

func TestCategoryService(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.categories)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Books", "dup")
	assert.ErrorIs(t, err, category.ErrDuplicateName)
	assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())

	toys, err := svc.Create(ctx, "Toys", "")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Books", stats[0].Name)
	assert.Equal(t, int64(1), stats[0].ProductCount)
	assert.Equal(t, int64(0), stats[1].ProductCount)

	name := "Games"
	updated, err := svc.Update(ctx, toys.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Games", updated.Name)

	// 删除分类不级联删除商品
	require.NoError(t, svc.Delete(ctx, f.books.ID))
	_, err = f.products.FindByID(ctx, f.novel.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, "bad-id")
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestToProductDTO_Timestamps(t *testing.T) {
	now := time.Now()
	dto := toProductDTO(&product.Product{ID: "p", CreatedAt: now}, nil)
	assert.Nil(t, dto.Category)
	assert.Equal(t, now, dto.CreatedAt)
	assert.NotNil(t, dto.ReviewIDs)
}
