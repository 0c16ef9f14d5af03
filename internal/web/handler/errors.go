package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pushcast/pushcast/internal/auth"
	"github.com/pushcast/pushcast/internal/push"
)

// ErrNilDeps is returned by Init when a dependency is missing.
var ErrNilDeps = errors.New(ErrNilACDFatalLogMsg)

// Error maps workflow errors to a *fiber.Error with status and message for the client.
func Error(err error) error {
	if err == nil {
		return nil
	}

	var (
		gwErr    *push.GatewayError
		fiberErr *fiber.Error
	)

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr
	case errors.Is(err, push.ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, auth.MsgAdminOnly)
	case errors.Is(err, push.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "Invalid Referer.")
	case errors.Is(err, push.ErrInvalidSettings):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid settings: "+err.Error())
	case errors.Is(err, push.ErrUnsupportedGateway):
		return fiber.NewError(fiber.StatusInternalServerError, "Push servers other than GCM are not yet supported.")
	case errors.Is(err, push.ErrNoRecipients):
		return fiber.NewError(fiber.StatusInternalServerError, "No registered devices.")
	case errors.Is(err, push.ErrNotConfigured):
		return fiber.NewError(fiber.StatusInternalServerError, MsgNotConfigured)
	case errors.As(err, &gwErr):
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Sending failed (status code %d).", gwErr.StatusCode))
	default:
		log.Error().Err(err).Msg("request failed")
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
}
