package terminal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportzone-booking/auth"
	"sportzone-booking/booking"
	"sportzone-booking/clock"
	"sportzone-booking/config"
	"sportzone-booking/database"
	"sportzone-booking/pricing"
)

type fixture struct {
	ledgerPath string
	service    *booking.Service
	accounts   *auth.StaticAccounts
}

func newFixture(t *testing.T) fixture {
	cfg := config.Default()
	logger, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "bookings.csv")
	svc := booking.NewService(
		cfg.Matches,
		pricing.NewEngine(cfg.Prices, cfg.VATRate),
		database.NewCSVLedger(path, cfg.CurrencySymbol, logger),
		clock.NewFixed(time.Date(2025, time.May, 4, 18, 45, 12, 0, time.Local)),
		logger,
	)
	return fixture{
		ledgerPath: path,
		service:    svc,
		accounts:   auth.NewStaticAccounts(cfg.Users, cfg.Admins),
	}
}

func (f fixture) runLogin(t *testing.T, lines ...string) string {
	var out bytes.Buffer
	logger, _ := test.NewNullLogger()
	console := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, f.service, "£", logger)
	require.NoError(t, console.RunLogin(context.Background(), f.accounts, auth.RolePolicy{}))
	return out.String()
}

func (f fixture) runFlat(t *testing.T, lines ...string) string {
	var out bytes.Buffer
	logger, _ := test.NewNullLogger()
	console := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, f.service, "£", logger)
	require.NoError(t, console.RunFlat(context.Background(), auth.OpenPolicy{}))
	return out.String()
}

var standardBooking = []string{"1", "1", "Standard", "2025-06-01", "2", "0", "1", "0", "Alex Doe", "07700 900123"}

func TestLoginSucceedsAfterFailedAttempts(t *testing.T) {
	f := newFixture(t)

	out := f.runLogin(t,
		"1", "user", "nope",
		"1", "user", "still-nope",
		"1", "user", "password123",
		"2",
	)

	assert.Equal(t, 2, strings.Count(out, "Invalid username or password. Try again."))
	assert.Contains(t, out, "Welcome, user!")
	assert.Contains(t, out, "USER MENU - SPORTZONE EVENTS BOOKING SYSTEM")
	assert.Contains(t, out, "1. Book Tickets\n2. Logout and Exit\n")
	assert.NotContains(t, out, "View All Bookings")
	assert.Contains(t, out, "Thank you for using SportZone Events!")
}

func TestLoginExit(t *testing.T) {
	f := newFixture(t)

	out := f.runLogin(t, "4", "3")

	assert.Contains(t, out, "Invalid option. Please enter 1, 2, or 3.")
	assert.Contains(t, out, "Goodbye!")
}

func TestUserBooksTickets(t *testing.T) {
	f := newFixture(t)

	out := f.runLogin(t, append(append([]string{"1", "user", "password123"}, standardBooking...), "2")...)

	assert.Contains(t, out, "Match: Thunderbolts vs Hurricanes")
	assert.Contains(t, out, "  Child: 2\n  Adult: 1\n")
	assert.NotContains(t, out, "  Teen:")
	assert.Contains(t, out, "Subtotal: £24.00")
	assert.Contains(t, out, "VAT (20%): £4.80")
	assert.Contains(t, out, "Total: £28.80")
	assert.Contains(t, out, "Booking saved successfully!")

	content, err := os.ReadFile(f.ledgerPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2025-05-04 18:45:12,Alex Doe,07700 900123,Thunderbolts vs Hurricanes,2025-06-01,Standard,2,0,1,0,£28.80")
}

func TestBookingErrorsKeepTheMenuRunning(t *testing.T) {
	tests := []struct {
		description string
		input       []string
		expected    string
	}{
		{
			description: "match out of range",
			input:       []string{"1", "9"},
			expected:    "invalid selection",
		},
		{
			description: "match not a number",
			input:       []string{"1", "first"},
			expected:    "invalid selection",
		},
		{
			description: "quantity not a number",
			input:       []string{"1", "1", "Standard", "2025-06-01", "two"},
			expected:    "invalid quantity",
		},
		{
			description: "negative quantity",
			input:       []string{"1", "1", "Standard", "2025-06-01", "-1", "0", "0", "0", "A", "B"},
			expected:    "invalid quantity",
		},
		{
			description: "unknown tier",
			input:       []string{"1", "1", "Gold", "2025-06-01", "1", "0", "0", "0", "A", "B"},
			expected:    "invalid pricing key",
		},
	}

	for _, test := range tests {
		f := newFixture(t)
		out := f.runFlat(t, append(test.input, "3")...)

		assert.Containsf(t, out, test.expected, test.description)
		assert.Containsf(t, out, "Thank you for using SportZone Events!", test.description)
		_, err := os.Stat(f.ledgerPath)
		assert.Truef(t, os.IsNotExist(err), "%s: nothing may be stored", test.description)
	}
}

func TestAdminViewsBookings(t *testing.T) {
	f := newFixture(t)

	out := f.runLogin(t, "2", "admin", "admin123", "1", "2")
	assert.Contains(t, out, "Welcome, Admin admin!")
	assert.Contains(t, out, "ADMIN MENU - SPORTZONE EVENTS BOOKING SYSTEM")
	assert.Contains(t, out, "No bookings file found yet.")

	f.runFlat(t, append(standardBooking, "3")...)

	out = f.runLogin(t, "2", "admin", "admin123", "1", "2")
	assert.Contains(t, out, "Booking 1:\n  Date: 2025-05-04 18:45:12\n  Name: Alex Doe\n")
	assert.Contains(t, out, "  Total: £28.80\n")
}

func TestAdminSeesEmptyLedger(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.ledgerPath, nil, 0644))

	out := f.runFlat(t, "2", "3")
	assert.Contains(t, out, "No bookings found.")
}

func TestCorruptLedgerIsReported(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.ledgerPath, []byte("not,a,ledger\n"), 0644))

	out := f.runFlat(t, "2", "3")
	assert.Contains(t, out, "Error accessing bookings")
	assert.NotContains(t, out, "No bookings")
}

func TestFlatMenu(t *testing.T) {
	f := newFixture(t)

	out := f.runFlat(t, "0", "3")
	assert.Contains(t, out, "1. Book Tickets\n2. View All Bookings\n3. Exit\n")
	assert.Contains(t, out, "Invalid option. Please enter a number from 1 to 3.")
}

func TestClosedInputEndsQuietly(t *testing.T) {
	f := newFixture(t)

	out := f.runFlat(t, "1", "1")
	assert.Contains(t, out, "Select match type")
	assert.NotContains(t, out, "Booking saved")
}
