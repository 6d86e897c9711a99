package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"sportzone-booking/deadline"
	"sportzone-booking/errors"
)

func (h *Handlers) TimeRemaining(c *fiber.Ctx) error {
	type deadlineRequest struct {
		Deadline string `json:"deadline"`
		Manual   bool   `json:"manual"`
	}

	req := new(deadlineRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("cannot parse request: %v", err))
	}

	calculate := deadline.TimeRemaining
	if req.Manual {
		calculate = deadline.TimeRemainingManual
	}
	remaining, err := calculate(req.Deadline, h.clock.Now())
	if err != nil {
		return errors.RaiseFromError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": remaining.String(),
		"data":    remaining})
}
