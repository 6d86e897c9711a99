package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"sportzone-booking/errors"
	"sportzone-booking/model"
)

// Quote is the price breakdown of a booking. Values are exact; round only for display.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type Engine struct {
	prices  model.PriceTable
	vatRate decimal.Decimal
}

func NewEngine(prices model.PriceTable, vatRate decimal.Decimal) *Engine {
	return &Engine{prices: prices, vatRate: vatRate}
}

func (e *Engine) Prices() model.PriceTable {
	return e.prices
}

func (e *Engine) VATRate() decimal.Decimal {
	return e.vatRate
}

// ComputeTotal prices the requested quantities for a tier. It has no side effects.
func (e *Engine) ComputeTotal(tier model.Tier, quantities model.Quantities) (Quote, error) {
	if err := e.prices.CheckTier(tier); err != nil {
		return Quote{}, err
	}

	subtotal := decimal.Zero
	for _, category := range orderedCategories(quantities) {
		qty := quantities[category]
		if qty < 0 {
			return Quote{}, fmt.Errorf("%w: %s quantity cannot be negative, got %d",
				errors.ErrInvalidQuantity, category, qty)
		}
		price, err := e.prices.UnitPrice(tier, category)
		if err != nil {
			return Quote{}, err
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	tax := subtotal.Mul(e.vatRate)
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}, nil
}

// orderedCategories lists the known categories first, then anything else sorted by name,
// so validation errors are reported deterministically.
func orderedCategories(quantities model.Quantities) []model.Category {
	ordered := make([]model.Category, 0, len(quantities))
	known := make(map[model.Category]bool)
	for _, category := range model.Categories() {
		known[category] = true
		if _, ok := quantities[category]; ok {
			ordered = append(ordered, category)
		}
	}
	var extra []model.Category
	for category := range quantities {
		if !known[category] {
			extra = append(extra, category)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(ordered, extra...)
}
