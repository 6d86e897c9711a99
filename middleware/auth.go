package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"

	"sportzone-booking/errors"
)

// IdentityKey is where the parsed token is stored in fiber locals.
const IdentityKey = "identity"

func Authorize(signingKey string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(signingKey),
		ErrorHandler: jwtError,
		ContextKey:   IdentityKey,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return errors.RaiseBadRequestError(c, "Missing or malformed JWT")
	}
	return errors.RaiseUnauthorizedError(c, "Invalid or expired JWT")
}
