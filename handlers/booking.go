package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sportzone-booking/booking"
	"sportzone-booking/errors"
	"sportzone-booking/model"
)

type bookingView struct {
	Date     string         `json:"date"`
	Name     string         `json:"name"`
	Contact  string         `json:"contact"`
	Match    string         `json:"match"`
	MatchDay string         `json:"match_date"`
	Type     model.Tier     `json:"type"`
	Tickets  map[string]int `json:"tickets"`
	Total    string         `json:"total"`
	Subtotal string         `json:"subtotal,omitempty"`
	VAT      string         `json:"vat,omitempty"`
}

func (h *Handlers) view(record model.BookingRecord) bookingView {
	tickets := make(map[string]int, len(record.Quantities))
	for _, category := range model.Categories() {
		tickets[string(category)] = record.Quantities.Get(category)
	}
	return bookingView{
		Date:     record.CreatedAt.Format(model.TimestampLayout),
		Name:     record.CustomerName,
		Contact:  record.ContactNumber,
		Match:    record.Match,
		MatchDay: record.MatchDate,
		Type:     record.Tier,
		Tickets:  tickets,
		Total:    model.FormatAmount(h.currency, record.TotalCharged),
	}
}

func (h *Handlers) GetBookings(c *fiber.Ctx) error {
	listing, err := h.service.ListAll(c.UserContext(), h.session(c))
	if err != nil {
		return errors.RaiseFromError(c, err)
	}

	views := make([]bookingView, 0, len(listing.Records))
	for _, record := range listing.Records {
		views = append(views, h.view(record))
	}

	message := "bookings"
	if listing.Absent {
		message = "no bookings file found yet"
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    views})
}

func (h *Handlers) CreateBooking(c *fiber.Ctx) error {
	req := new(booking.Request)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for booking parameters: %v", err))
	}

	created, err := h.service.Book(c.UserContext(), h.session(c), *req)
	if err != nil {
		return errors.RaiseFromError(c, err)
	}

	view := h.view(created.Record)
	view.Subtotal = model.FormatAmount(h.currency, created.Quote.Subtotal)
	view.VAT = model.FormatAmount(h.currency, created.Quote.Tax)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "booking saved",
		"data":    view})
}
