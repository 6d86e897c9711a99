package pricing_test

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportzone-booking/config"
	"sportzone-booking/errors"
	"sportzone-booking/model"
	"sportzone-booking/pricing"
)

func newEngine() *pricing.Engine {
	cfg := config.Default()
	return pricing.NewEngine(cfg.Prices, cfg.VATRate)
}

func TestComputeTotalStandardScenario(t *testing.T) {
	quote, err := newEngine().ComputeTotal(model.TierStandard, model.Quantities{
		model.CategoryChild: 2,
		model.CategoryTeen:  0,
		model.CategoryAdult: 1,
		model.CategoryVIP:   0,
	})
	require.NoError(t, err)

	assert.Equal(t, "24.00", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "4.80", quote.Tax.StringFixed(2))
	assert.Equal(t, "28.80", quote.Total.StringFixed(2))
	assert.Equal(t, "£28.80", model.FormatAmount("£", quote.Total))
}

func TestComputeTotalIsLinearAndTaxed(t *testing.T) {
	engine := newEngine()
	factor := decimal.RequireFromString("1.20")

	for _, tier := range []model.Tier{model.TierStandard, model.TierPremium} {
		for _, category := range model.Categories() {
			one, err := engine.ComputeTotal(tier, model.Quantities{category: 1})
			require.NoError(t, err)

			for qty := 0; qty <= 7; qty++ {
				quote, err := engine.ComputeTotal(tier, model.Quantities{category: qty})
				require.NoError(t, err)

				n := decimal.NewFromInt(int64(qty))
				assert.Truef(t, quote.Subtotal.Equal(one.Subtotal.Mul(n)), "%s/%s x%d subtotal", tier, category, qty)
				assert.Truef(t, quote.Total.Equal(quote.Subtotal.Mul(factor)), "%s/%s x%d total", tier, category, qty)
				assert.Truef(t, quote.Total.Equal(quote.Subtotal.Add(quote.Tax)), "%s/%s x%d sum", tier, category, qty)
			}
		}
	}
}

func TestComputeTotalAllZero(t *testing.T) {
	quote, err := newEngine().ComputeTotal(model.TierPremium, model.Quantities{
		model.CategoryChild: 0,
		model.CategoryTeen:  0,
		model.CategoryAdult: 0,
		model.CategoryVIP:   0,
	})
	require.NoError(t, err)

	assert.Equal(t, "0.00", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", quote.Tax.StringFixed(2))
	assert.Equal(t, "0.00", quote.Total.StringFixed(2))
}

func TestComputeTotalErrors(t *testing.T) {
	tests := []struct {
		description string
		tier        model.Tier
		quantities  model.Quantities
		expected    error
	}{
		{
			description: "unknown tier",
			tier:        "Gold",
			quantities:  model.Quantities{model.CategoryAdult: 1},
			expected:    errors.ErrInvalidPricingKey,
		},
		{
			description: "tier is case sensitive",
			tier:        "standard",
			quantities:  model.Quantities{model.CategoryAdult: 1},
			expected:    errors.ErrInvalidPricingKey,
		},
		{
			description: "unknown category",
			tier:        model.TierStandard,
			quantities:  model.Quantities{"Senior": 1},
			expected:    errors.ErrInvalidPricingKey,
		},
		{
			description: "negative quantity",
			tier:        model.TierPremium,
			quantities:  model.Quantities{model.CategoryTeen: -1},
			expected:    errors.ErrInvalidQuantity,
		},
	}

	engine := newEngine()
	for _, test := range tests {
		_, err := engine.ComputeTotal(test.tier, test.quantities)
		assert.Truef(t, stderrors.Is(err, test.expected), "%s: got %v", test.description, err)
	}
}

func TestComputeTotalAvoidsFloatDrift(t *testing.T) {
	prices := model.NewPriceTable([]model.TierPrices{{
		Tier:   model.TierStandard,
		Prices: map[model.Category]decimal.Decimal{model.CategoryChild: decimal.RequireFromString("0.10")},
	}})
	engine := pricing.NewEngine(prices, decimal.RequireFromString("0.20"))

	quote, err := engine.ComputeTotal(model.TierStandard, model.Quantities{model.CategoryChild: 3})
	require.NoError(t, err)
	assert.Equal(t, "0.3", quote.Subtotal.String())
	assert.Equal(t, "0.36", quote.Total.String())
}
