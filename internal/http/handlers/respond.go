package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lablink/backend/internal/errs"
	"github.com/lablink/backend/internal/http/dto"
	"go.uber.org/zap"
)

// statusFor maps sentinel errors to HTTP status codes in one place so every
// handler surfaces the taxonomy consistently.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, errs.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, errs.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, errs.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		log.Error("internal error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(code).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
}
