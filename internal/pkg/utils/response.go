package utils

import (
	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse - формат тела ошибки, совместимый с клиентами сервиса
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: errors.ErrInternalServer.Message,
		Code:    errors.ErrInternalServer.Code,
	})
}
