package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"sportzone-booking/auth"
	"sportzone-booking/clock"
	"sportzone-booking/database"
	"sportzone-booking/errors"
	"sportzone-booking/model"
	"sportzone-booking/pricing"
)

// Request carries the raw selections collected from the customer.
// Name, contact and match date are free text and are stored as entered.
type Request struct {
	MatchNumber   int              `json:"match_number"`
	Tier          model.Tier       `json:"type"`
	MatchDate     string           `json:"match_date"`
	Quantities    model.Quantities `json:"quantities"`
	CustomerName  string           `json:"name"`
	ContactNumber string           `json:"contact"`
}

type Booking struct {
	Record model.BookingRecord `json:"record"`
	Quote  pricing.Quote       `json:"quote"`
}

type Service struct {
	matches model.Matches
	engine  *pricing.Engine
	ledger  database.Ledger
	clock   clock.Clock
	logger  logrus.FieldLogger
}

func NewService(
	matches model.Matches,
	engine *pricing.Engine,
	ledger database.Ledger,
	clk clock.Clock,
	logger logrus.FieldLogger,
) *Service {
	return &Service{
		matches: append(model.Matches(nil), matches...),
		engine:  engine,
		ledger:  ledger,
		clock:   clk,
		logger:  logger,
	}
}

// Matches returns a copy of the bookable matches in selection order.
func (s *Service) Matches() model.Matches {
	return append(model.Matches(nil), s.matches...)
}

func (s *Service) Prices() model.PriceTable {
	return s.engine.Prices()
}

func (s *Service) Engine() *pricing.Engine {
	return s.engine
}

// Prepare validates the request and assembles the record without storing it.
func (s *Service) Prepare(req Request) (Booking, error) {
	match, err := s.matches.Select(req.MatchNumber)
	if err != nil {
		return Booking{}, err
	}

	quote, err := s.engine.ComputeTotal(req.Tier, req.Quantities)
	if err != nil {
		return Booking{}, err
	}

	quantities := make(model.Quantities, len(model.Categories()))
	for _, category := range model.Categories() {
		quantities[category] = req.Quantities.Get(category)
	}

	record := model.BookingRecord{
		CreatedAt:     s.clock.Now().Truncate(time.Second),
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,
		Match:         match,
		MatchDate:     req.MatchDate,
		Tier:          req.Tier,
		Quantities:    quantities,
		TotalCharged:  quote.Total.Round(2),
	}
	return Booking{Record: record, Quote: quote}, nil
}

// Book prices the request and appends it to the ledger.
func (s *Service) Book(ctx context.Context, session auth.Session, req Request) (Booking, error) {
	if !session.CanBook() {
		return Booking{}, fmt.Errorf("%w: %s cannot book tickets", errors.ErrForbidden, session.User.Role)
	}

	booking, err := s.Prepare(req)
	if err != nil {
		return Booking{}, err
	}
	if err := s.Save(ctx, session, booking); err != nil {
		return Booking{}, err
	}
	return booking, nil
}

// Save appends a prepared booking to the ledger.
func (s *Service) Save(ctx context.Context, session auth.Session, booking Booking) error {
	if !session.CanBook() {
		return fmt.Errorf("%w: %s cannot book tickets", errors.ErrForbidden, session.User.Role)
	}

	if err := s.ledger.Append(ctx, booking.Record); err != nil {
		s.logger.WithError(err).WithField("session_id", session.ID).Error("saving booking failed")
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"match":      booking.Record.Match,
		"tier":       booking.Record.Tier,
		"total":      booking.Record.TotalCharged.StringFixed(2),
	}).Info("booking saved")
	return nil
}

// ListAll returns every stored booking, oldest first.
func (s *Service) ListAll(ctx context.Context, session auth.Session) (database.Listing, error) {
	if !session.CanViewAll() {
		return database.Listing{}, fmt.Errorf("%w: %s cannot view bookings", errors.ErrForbidden, session.User.Role)
	}
	return s.ledger.ListAll(ctx)
}
