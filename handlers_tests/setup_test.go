package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"sportzone-booking/auth"
	"sportzone-booking/booking"
	"sportzone-booking/clock"
	"sportzone-booking/config"
	"sportzone-booking/database"
	"sportzone-booking/handlers"
	"sportzone-booking/pricing"
	"sportzone-booking/router"
)

const testSigningKey = "test-signing-key"

var testNow = time.Date(2025, time.June, 1, 8, 30, 0, 0, time.UTC)

type Test struct {
	description  string
	method       string
	route        string
	bodyinput    []byte
	token        string
	expectedCode int
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T) *fiber.App {
	cfg := config.Default()
	logger, _ := test.NewNullLogger()
	clk := clock.NewFixed(testNow)

	svc := booking.NewService(
		cfg.Matches,
		pricing.NewEngine(cfg.Prices, cfg.VATRate),
		database.NewCSVLedger(filepath.Join(t.TempDir(), "bookings.csv"), cfg.CurrencySymbol, logger),
		clk,
		logger,
	)
	h := handlers.New(
		svc,
		auth.NewStaticAccounts(cfg.Users, cfg.Admins),
		auth.RolePolicy{},
		clk,
		testSigningKey,
		10*365*24*time.Hour,
		cfg.CurrencySymbol,
	)

	app := fiber.New()
	router.SetupRoutes(app, h, testSigningKey, io.Discard)
	return app
}

func do(t *testing.T, app *fiber.App, test Test) (int, response) {
	t.Helper()
	req, err := http.NewRequest(test.method, test.route, bytes.NewBuffer(test.bodyinput))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if test.token != "" {
		req.Header.Set("Authorization", "Bearer "+test.token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	var body response
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoErrorf(t, json.Unmarshal(raw, &body), "body: %s", raw)
	}
	return res.StatusCode, body
}

func login(t *testing.T, app *fiber.App, login, password, role string) string {
	t.Helper()
	status, body := do(t, app, Test{
		method:    "POST",
		route:     "/login",
		bodyinput: []byte(`{"login":"` + login + `","password":"` + password + `","role":"` + role + `"}`),
	})
	require.Equal(t, 200, status)

	var token string
	require.NoError(t, json.Unmarshal(body.Data, &token))
	return token
}
