package controller

import (
	"errors"

	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// toHTTPError keeps client-safe service messages and hides everything else behind fallback.
func toHTTPError(err error, fallback string) error {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		switch {
		case errors.Is(err, service.ErrValidation):
			return serverutils.NewHTTPError(fiber.StatusBadRequest, svcErr.Message, err)
		case errors.Is(err, service.ErrNotFound):
			return serverutils.NewHTTPError(fiber.StatusNotFound, svcErr.Message, err)
		case errors.Is(err, service.ErrConflict):
			return serverutils.NewHTTPError(fiber.StatusConflict, svcErr.Message, err)
		case errors.Is(err, service.ErrUnauthorized):
			return serverutils.NewHTTPError(fiber.StatusUnauthorized, svcErr.Message, err)
		}
	}
	return serverutils.NewHTTPError(fiber.StatusInternalServerError, fallback, err)
}
