package serverutils

import (
	"errors"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/pkg/responder"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// uniform JSON envelope. Responder failures that reach this point (translate
// endpoints; chat turns absorb theirs) map to 502.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErrs validator.ValidationErrors
		var fiberErr *fiber.Error
		var respErr *responder.Error

		switch {
		case errors.Is(err, dto.ErrSessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))

		case errors.Is(err, dto.ErrTurnInFlight):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))

		case errors.Is(err, dto.ErrEmptyTurnInput):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))

		case errors.As(err, &validationErrs):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse("Validation failed: " + validationErrs.Error()))

		case errors.As(err, &respErr):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(respErr.Message))

		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))

		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
		}
	}
}
