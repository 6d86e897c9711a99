package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"sportzone-booking/auth"
	"sportzone-booking/booking"
	"sportzone-booking/clock"
	"sportzone-booking/middleware"
	"sportzone-booking/model"
)

// Handlers exposes the booking core over HTTP.
type Handlers struct {
	service       *booking.Service
	authenticator auth.Authenticator
	policy        auth.Policy
	clock         clock.Clock
	signingKey    []byte
	tokenTTL      time.Duration
	currency      string
}

func New(
	service *booking.Service,
	authenticator auth.Authenticator,
	policy auth.Policy,
	clk clock.Clock,
	signingKey string,
	tokenTTL time.Duration,
	currencySymbol string,
) *Handlers {
	return &Handlers{
		service:       service,
		authenticator: authenticator,
		policy:        policy,
		clock:         clk,
		signingKey:    []byte(signingKey),
		tokenTTL:      tokenTTL,
		currency:      currencySymbol,
	}
}

type matchView struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type tierView struct {
	Type   model.Tier        `json:"type"`
	Prices map[string]string `json:"prices"`
}

func (h *Handlers) GetMatches(c *fiber.Ctx) error {
	matches := h.service.Matches()
	matchViews := make([]matchView, 0, len(matches))
	for i, name := range matches {
		matchViews = append(matchViews, matchView{Number: i + 1, Name: name})
	}

	prices := h.service.Prices()
	tierViews := []tierView{}
	for _, tier := range prices.Tiers() {
		view := tierView{Type: tier, Prices: map[string]string{}}
		for _, category := range model.Categories() {
			price, err := prices.UnitPrice(tier, category)
			if err != nil {
				continue
			}
			view.Prices[string(category)] = model.FormatAmount(h.currency, price)
		}
		tierViews = append(tierViews, view)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "matches",
		"data": fiber.Map{
			"matches":  matchViews,
			"types":    tierViews,
			"vat_rate": h.service.Engine().VATRate().String(),
		}})
}

// session rebuilds the caller's session from the verified token.
func (h *Handlers) session(c *fiber.Ctx) auth.Session {
	token, ok := c.Locals(middleware.IdentityKey).(*jwt.Token)
	if !ok {
		return auth.NewSession(model.UserData{}, h.policy)
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	login, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	session := auth.NewSession(model.UserData{Login: login, Role: model.Role(role)}, h.policy)
	if jti, _ := claims["jti"].(string); jti != "" {
		if id, err := uuid.Parse(jti); err == nil {
			session.ID = id
		}
	}
	return session
}
