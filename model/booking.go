package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the layout of the ledger Date column.
const TimestampLayout = "2006-01-02 15:04:05"

// BookingRecord is a single stored booking. Records are created once and never updated.
type BookingRecord struct {
	CreatedAt     time.Time       `json:"date"`
	CustomerName  string          `json:"name"`
	ContactNumber string          `json:"contact"`
	Match         string          `json:"match"`
	MatchDate     string          `json:"match_date"`
	Tier          Tier            `json:"type"`
	Quantities    Quantities      `json:"quantities"`
	TotalCharged  decimal.Decimal `json:"total"`
}

// LedgerColumns returns the tabular header in field declaration order.
func LedgerColumns() []string {
	columns := []string{"Date", "Name", "Contact", "Match", "Match Date", "Type"}
	for _, category := range Categories() {
		columns = append(columns, string(category))
	}
	return append(columns, "Total")
}

// Row renders the record as ledger cells, in LedgerColumns order.
func (r BookingRecord) Row(currencySymbol string) []string {
	row := []string{
		r.CreatedAt.Format(TimestampLayout),
		r.CustomerName,
		r.ContactNumber,
		r.Match,
		r.MatchDate,
		string(r.Tier),
	}
	for _, category := range Categories() {
		row = append(row, strconv.Itoa(r.Quantities.Get(category)))
	}
	return append(row, FormatAmount(currencySymbol, r.TotalCharged))
}

// FormatAmount renders an amount the way receipts and the ledger show it, e.g. "£28.80".
func FormatAmount(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}
