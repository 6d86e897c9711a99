package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sportzone-booking/errors"
)

type Tier string

const (
	TierStandard Tier = "Standard"
	TierPremium  Tier = "Premium"
)

type Category string

const (
	CategoryChild Category = "Child"
	CategoryTeen  Category = "Teen"
	CategoryAdult Category = "Adult"
	CategoryVIP   Category = "VIP"
)

// Categories returns the ticket categories in display and ledger column order.
func Categories() []Category {
	return []Category{CategoryChild, CategoryTeen, CategoryAdult, CategoryVIP}
}

// TierPrices is the unit price of every category for one tier.
type TierPrices struct {
	Tier   Tier
	Prices map[Category]decimal.Decimal
}

// PriceTable is an immutable (tier, category) -> unit price lookup.
type PriceTable struct {
	tiers  []Tier
	prices map[Tier]map[Category]decimal.Decimal
}

func NewPriceTable(tiers []TierPrices) PriceTable {
	table := PriceTable{
		tiers:  make([]Tier, 0, len(tiers)),
		prices: make(map[Tier]map[Category]decimal.Decimal, len(tiers)),
	}
	for _, tp := range tiers {
		if _, exists := table.prices[tp.Tier]; !exists {
			table.tiers = append(table.tiers, tp.Tier)
		}
		prices := make(map[Category]decimal.Decimal, len(tp.Prices))
		for category, price := range tp.Prices {
			prices[category] = price
		}
		table.prices[tp.Tier] = prices
	}
	return table
}

func (p PriceTable) UnitPrice(tier Tier, category Category) (decimal.Decimal, error) {
	if err := p.CheckTier(tier); err != nil {
		return decimal.Zero, err
	}
	price, ok := p.prices[tier][category]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown ticket category %q for %s", errors.ErrInvalidPricingKey, category, tier)
	}
	return price, nil
}

// CheckTier fails with ErrInvalidPricingKey when the tier has no prices.
func (p PriceTable) CheckTier(tier Tier) error {
	if _, ok := p.prices[tier]; !ok {
		return fmt.Errorf("%w: unknown match type %q", errors.ErrInvalidPricingKey, tier)
	}
	return nil
}

// Tiers returns the configured tiers in configuration order.
func (p PriceTable) Tiers() []Tier {
	return append([]Tier(nil), p.tiers...)
}

// Quantities maps a ticket category to the number of tickets requested.
type Quantities map[Category]int

// Get returns zero for categories that were not requested.
func (q Quantities) Get(category Category) int {
	return q[category]
}
