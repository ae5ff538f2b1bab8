package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

const (
	productA = "11111111-1111-4111-8111-111111111111"
	productB = "22222222-2222-4222-8222-222222222222"
)

func TestSubtotal_Rounding(t *testing.T) {
	tests := []struct {
		price string
		qty   int
		want  string
	}{
		{"10.005", 1, "10.01"},
		{"19.99", 3, "59.97"},
		{"0.3333", 3, "1"},
		{"2.675", 2, "5.35"},
		{"0", 5, "0"},
	}
	for _, tt := range tests {
		got := Subtotal(decimal.RequireFromString(tt.price), tt.qty)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s × %d 期望%s,实际%s", tt.price, tt.qty, tt.want, got)
	}
}

func TestPriceItems(t *testing.T) {
	prices := map[string]decimal.Decimal{
		productA: decimal.RequireFromString("10.00"),
		productB: decimal.RequireFromString("20.005"),
	}

	items, err := PriceItems([]LineRequest{
		{ProductID: productA, Quantity: 2},
		{ProductID: productB, Quantity: 1},
	}, prices)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "20", items[0].Subtotal.String())
	assert.Equal(t, "20.01", items[1].Subtotal.String())
	assert.Equal(t, "40.01", SumSubtotals(items).StringFixed(2))
}

func TestPriceItems_Errors(t *testing.T) {
	prices := map[string]decimal.Decimal{productA: decimal.NewFromInt(1)}

	_, err := PriceItems(nil, prices)
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = PriceItems([]LineRequest{{ProductID: "not-a-uuid", Quantity: 1}}, prices)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidID))

	_, err = PriceItems([]LineRequest{{ProductID: productA, Quantity: 0}}, prices)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = PriceItems([]LineRequest{{ProductID: productB, Quantity: 1}}, prices)
	require.True(t, apperrors.HasCode(err, apperrors.ErrCodeProductNotFound))
	assert.Contains(t, err.Error(), productB)

	negative := map[string]decimal.Decimal{productA: decimal.NewFromInt(-1)}
	_, err = PriceItems([]LineRequest{{ProductID: productA, Quantity: 1}}, negative)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestNewOrder(t *testing.T) {
	items := []Item{
		{ProductID: productA, Quantity: 2, Subtotal: decimal.RequireFromString("20.00")},
		{ProductID: productB, Quantity: 1, Subtotal: decimal.RequireFromString("20.01")},
		{ProductID: productA, Quantity: 1, Subtotal: decimal.RequireFromString("10.00")},
	}
	o := NewOrder("user-1", "card", items)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "50.01", o.Total.StringFixed(2))
	assert.Equal(t, []string{productA, productB}, o.ProductIDs())
	assert.Regexp(t, `^ORD\d+$`, o.OrderNo)
	assert.True(t, o.IsOwnedBy("user-1"))

	o.ReplaceItems(items[:1])
	assert.Equal(t, "20.00", o.Total.StringFixed(2))
}
