package terminal

import (
	"context"
	"fmt"

	"sportzone-booking/auth"
	"sportzone-booking/booking"
	"sportzone-booking/errors"
	"sportzone-booking/model"
)

func (c *Console) bookTickets(ctx context.Context, session auth.Session) error {
	c.heading("TICKET BOOKING")

	matches := c.service.Matches()
	c.printf("\nAvailable Matches:\n")
	for i, match := range matches {
		c.printf("%d. %s\n", i+1, match)
	}

	var req booking.Request
	input, ok := c.prompt("Select match number: ")
	if !ok {
		return nil
	}
	number, err := parseInt(input)
	if err != nil {
		return fmt.Errorf("%w: %q is not a match number", errors.ErrInvalidSelection, input)
	}
	if _, err := matches.Select(number); err != nil {
		return err
	}
	req.MatchNumber = number

	tier, ok := c.prompt("\nSelect match type (Standard/Premium): ")
	if !ok {
		return nil
	}
	req.Tier = model.Tier(tier)

	if req.MatchDate, ok = c.prompt("Enter match date (YYYY-MM-DD): "); !ok {
		return nil
	}

	req.Quantities = make(model.Quantities)
	c.printf("\nEnter quantity for each ticket type (or 0 for none):\n")
	for _, category := range model.Categories() {
		input, ok := c.prompt(fmt.Sprintf("%s: ", category))
		if !ok {
			return nil
		}
		qty, err := parseInt(input)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number of %s tickets", errors.ErrInvalidQuantity, input, category)
		}
		req.Quantities[category] = qty
	}

	if req.CustomerName, ok = c.prompt("\nEnter your name: "); !ok {
		return nil
	}
	if req.ContactNumber, ok = c.prompt("Enter your contact number: "); !ok {
		return nil
	}

	prepared, err := c.service.Prepare(req)
	if err != nil {
		return err
	}
	c.summary(prepared)

	if err := c.service.Save(ctx, session, prepared); err != nil {
		return err
	}
	c.printf("\nBooking saved successfully!\n")
	return nil
}

func (c *Console) summary(b booking.Booking) {
	c.heading("BOOKING SUMMARY")
	c.printf("Match: %s\nDate: %s\nType: %s\n", b.Record.Match, b.Record.MatchDate, b.Record.Tier)
	c.printf("\nTickets:\n")
	for _, category := range model.Categories() {
		if qty := b.Record.Quantities.Get(category); qty > 0 {
			c.printf("  %s: %d\n", category, qty)
		}
	}
	vatPercent := c.service.Engine().VATRate().Shift(2)
	c.printf("\nSubtotal: %s\n", model.FormatAmount(c.currency, b.Quote.Subtotal))
	c.printf("VAT (%s%%): %s\n", vatPercent.String(), model.FormatAmount(c.currency, b.Quote.Tax))
	c.printf("Total: %s\n", model.FormatAmount(c.currency, b.Quote.Total))
}

func (c *Console) viewBookings(ctx context.Context, session auth.Session) error {
	c.heading("ALL BOOKINGS - ADMIN VIEW")

	listing, err := c.service.ListAll(ctx, session)
	if err != nil {
		return err
	}
	if listing.Absent {
		c.printf("No bookings file found yet.\n")
		return nil
	}
	if len(listing.Records) == 0 {
		c.printf("No bookings found.\n")
		return nil
	}

	columns := model.LedgerColumns()
	for i, record := range listing.Records {
		c.printf("\nBooking %d:\n", i+1)
		for j, value := range record.Row(c.currency) {
			c.printf("  %s: %s\n", columns[j], value)
		}
	}
	return nil
}
