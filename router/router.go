package router

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"sportzone-booking/handlers"
	"sportzone-booking/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, signingKey string, accessLog io.Writer) {
	api := app.Group("/", logger.New(logger.Config{Output: accessLog}))

	//Login
	api.Post("/login", h.Login)

	//Matches and prices
	api.Get("/matches", h.GetMatches)

	//Deadline utility
	api.Post("/deadline", h.TimeRemaining)

	//Booking
	booking := api.Group("/bookings", middleware.Authorize(signingKey))
	booking.Get("/", h.GetBookings)
	booking.Post("/", h.CreateBooking)
}
