package pricing

import (
	"testing"

	"github.com/skadi15/fruitstand/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Quote_DefaultCatalog(t *testing.T) {
	calc := NewCalculator(DefaultCatalog())

	tests := []struct {
		name    string
		apples  int
		oranges int
		want    model.Money
	}{
		{name: "both fruits no deals", apples: 1, oranges: 2, want: 145},
		{name: "apple deal", apples: 5, oranges: 2, want: 195},
		{name: "orange deal", apples: 1, oranges: 7, want: 325},
		{name: "both deals", apples: 4, oranges: 6, want: 290},
		{name: "no items", apples: 0, oranges: 0, want: 0},
		{name: "single apple", apples: 1, oranges: 0, want: 25},
		{name: "two apples cost one", apples: 2, oranges: 0, want: 25},
		{name: "three oranges cost two", apples: 0, oranges: 3, want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := calc.Quote(tt.apples, tt.oranges)
			assert.Equal(t, tt.want, q.TotalCents)
			assert.InDelta(t, tt.want.Dollars(), q.TotalCost, 1e-9)
		})
	}
}

func TestCalculator_Quote_Lines(t *testing.T) {
	q := NewCalculator(DefaultCatalog()).Quote(5, 7)
	require.Len(t, q.Lines, 2)

	apples, ok := q.Line(model.ParamApples)
	require.True(t, ok)
	assert.Equal(t, 5, apples.Quantity)
	assert.Equal(t, 3, apples.Charged)
	assert.Equal(t, model.Money(125), apples.Subtotal)
	assert.Equal(t, model.Money(50), apples.Discount)
	assert.Equal(t, "buy-one-get-one-free", apples.Offer)

	oranges, ok := q.Line(model.ParamOranges)
	require.True(t, ok)
	assert.Equal(t, 5, oranges.Charged)
	assert.Equal(t, model.Money(120), oranges.Discount)
	assert.Equal(t, "three-for-two", oranges.Offer)

	_, ok = q.Line("pears")
	assert.False(t, ok)
}

func TestCalculator_OffersDisabled(t *testing.T) {
	calc := NewCalculator(Catalog{AppleCents: 25, OrangeCents: 60})

	q := calc.Quote(4, 6)
	assert.Equal(t, model.Money(460), q.TotalCents)
	for _, l := range q.Lines {
		assert.Zero(t, l.Discount)
		assert.Empty(t, l.Offer)
	}
}

func TestNewCalculator_ClampsNegativePrices(t *testing.T) {
	calc := NewCalculator(Catalog{AppleCents: -10, OrangeCents: 60})
	assert.Equal(t, model.Money(0), calc.Catalog().AppleCents)
	assert.Equal(t, model.Money(60), calc.Total(3, 1))
}

func TestCalculator_NegativeQuantitiesTreatedAsZero(t *testing.T) {
	calc := NewCalculator(DefaultCatalog())
	assert.Equal(t, model.Money(0), calc.Total(-3, -1))
}
