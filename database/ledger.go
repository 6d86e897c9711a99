package database

import (
	"context"

	"sportzone-booking/model"
)

// Ledger is the append-only store of booking records.
//
// Implementations assume a single writer: nothing here locks the backing store, so two
// processes appending to the same ledger at once may interleave rows.
//
// The CSV ledger stores local wall-clock timestamps without an offset. A booking made in
// the repeated hour of a DST fall-back reads back as the first occurrence of that hour.
type Ledger interface {
	Append(ctx context.Context, record model.BookingRecord) error
	ListAll(ctx context.Context) (Listing, error)
}

// Listing is the result of reading a ledger. Absent is set when the backing store has never
// been created, which is a valid empty ledger. A store that exists but cannot be read is an
// error, never an Absent listing.
type Listing struct {
	Records []model.BookingRecord
	Absent  bool
}
