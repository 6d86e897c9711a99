package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"sportzone-booking/errors"
	"sportzone-booking/model"
)

func (h *Handlers) Login(c *fiber.Ctx) error {
	type Credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	var creds = new(Credentials)

	if err := c.BodyParser(creds); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("cannot parse credentials: %v", err))
	}

	role := model.Role(creds.Role)
	if role == "" {
		role = model.RoleUser
	}

	user, err := h.authenticator.Authenticate(creds.Login, creds.Password, role)
	if err != nil {
		return errors.RaiseFromError(c, err)
	}

	if len(h.signingKey) == 0 {
		return errors.RaiseInternalServerError(c, "token signing key is not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Login,
		"role":     string(user.Role),
		"jti":      uuid.NewString(),
		"exp":      h.clock.Now().Add(h.tokenTTL).Unix(),
	})

	t, err := token.SignedString(h.signingKey)
	if err != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("cannot sign token: %v", err))
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}
