// Package terminal is the interactive front end. It only collects input and prints
// results; every decision is made by the booking core.
package terminal

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"sportzone-booking/auth"
	"sportzone-booking/booking"
	"sportzone-booking/errors"
)

const rule = "=================================================="

type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	service  *booking.Service
	currency string
	logger   logrus.FieldLogger
}

func New(in io.Reader, out io.Writer, service *booking.Service, currencySymbol string, logger logrus.FieldLogger) *Console {
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		service:  service,
		currency: currencySymbol,
		logger:   logger,
	}
}

type menuItem struct {
	label  string
	action func(ctx context.Context, session auth.Session) error
}

// RunLogin shows the login screen and then the menu the logged-in role is allowed to use.
func (c *Console) RunLogin(ctx context.Context, authenticator auth.Authenticator, policy auth.Policy) error {
	session, ok := c.login(authenticator, policy)
	if !ok {
		return c.in.Err()
	}

	title := "USER MENU - SPORTZONE EVENTS BOOKING SYSTEM"
	if session.CanViewAll() && !session.CanBook() {
		title = "ADMIN MENU - SPORTZONE EVENTS BOOKING SYSTEM"
	}
	c.menu(ctx, session, title, "Logout and Exit")
	return c.in.Err()
}

// RunFlat shows a single menu with every action the policy grants a guest.
func (c *Console) RunFlat(ctx context.Context, policy auth.Policy) error {
	c.menu(ctx, auth.GuestSession(policy), "SPORTZONE EVENTS BOOKING SYSTEM", "Exit")
	return c.in.Err()
}

func (c *Console) menu(ctx context.Context, session auth.Session, title, exitLabel string) {
	var items []menuItem
	if session.CanBook() {
		items = append(items, menuItem{label: "Book Tickets", action: c.bookTickets})
	}
	if session.CanViewAll() {
		items = append(items, menuItem{label: "View All Bookings", action: c.viewBookings})
	}

	logger := c.logger.WithFields(logrus.Fields{"session_id": session.ID, "role": session.User.Role})
	logger.Debug("menu started")

	for {
		c.heading(title)
		for i, item := range items {
			c.printf("%d. %s\n", i+1, item.label)
		}
		exitChoice := len(items) + 1
		c.printf("%d. %s\n", exitChoice, exitLabel)

		choice, ok := c.prompt(fmt.Sprintf("\nSelect option (1-%d): ", exitChoice))
		if !ok {
			logger.Debug("input closed")
			return
		}

		n, err := parseChoice(choice, exitChoice)
		if err != nil {
			c.printf("Invalid option. Please enter a number from 1 to %d.\n", exitChoice)
			continue
		}
		if n == exitChoice {
			c.printf("Thank you for using SportZone Events!\n")
			return
		}

		if err := items[n-1].action(ctx, session); err != nil {
			c.report(err)
		}
	}
}

// report prints an error and lets the menu continue.
func (c *Console) report(err error) {
	switch {
	case errors.IsUserError(err):
		c.printf("\nError: %v\n", err)
	case stderrors.Is(err, errors.ErrPersistence):
		c.logger.WithError(err).Warn("ledger operation failed")
		c.printf("\nError accessing bookings: %v\n", err)
	case stderrors.Is(err, errors.ErrForbidden):
		c.printf("\nError: %v\n", err)
	default:
		c.logger.WithError(err).Error("unexpected error")
		c.printf("\nUnexpected error: %v\n", err)
	}
}

func (c *Console) heading(title string) {
	c.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func parseChoice(input string, last int) (int, error) {
	n, err := parseInt(input)
	if err != nil || n < 1 || n > last {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidSelection, input)
	}
	return n, nil
}

func parseInt(input string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(input))
}
