package errors

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidSelection  = stderrors.New("invalid selection")
	ErrInvalidPricingKey = stderrors.New("invalid pricing key")
	ErrInvalidQuantity   = stderrors.New("invalid quantity")
	ErrInvalidDateFormat = stderrors.New("invalid date format")
	ErrPersistence       = stderrors.New("persistence error")
	ErrInvalidLogin      = stderrors.New("invalid username or password")
	ErrForbidden         = stderrors.New("lack of permissions")
)

// IsUserError reports whether err comes from bad input rather than from storage.
func IsUserError(err error) bool {
	return stderrors.Is(err, ErrInvalidSelection) ||
		stderrors.Is(err, ErrInvalidPricingKey) ||
		stderrors.Is(err, ErrInvalidQuantity) ||
		stderrors.Is(err, ErrInvalidDateFormat)
}

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusForbidden, "lack of permissions", data)
}

func RaiseUnauthorizedError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "unauthorized", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

// RaiseFromError picks the response status from the error category.
func RaiseFromError(context *fiber.Ctx, err error) error {
	switch {
	case IsUserError(err):
		return RaiseBadRequestError(context, err.Error())
	case stderrors.Is(err, ErrInvalidLogin):
		return RaiseUnauthorizedError(context, err.Error())
	case stderrors.Is(err, ErrForbidden):
		return RaisePermissionsError(context, err.Error())
	default:
		return RaiseInternalServerError(context, err.Error())
	}
}
