package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/emergency-microservice/internal/pkg/utils"
	"github.com/emergency-microservice/internal/pkg/validator"
	"github.com/emergency-microservice/internal/usecase"
	"github.com/emergency-microservice/internal/usecase/dto"
)

// EmergencyHandler - обработчик экстренных вызовов
type EmergencyHandler struct {
	emergencyUC *usecase.EmergencyUseCase
	logger      *zap.Logger
}

// NewEmergencyHandler - создание нового EmergencyHandler
func NewEmergencyHandler(emergencyUC *usecase.EmergencyUseCase, logger *zap.Logger) *EmergencyHandler {
	return &EmergencyHandler{
		emergencyUC: emergencyUC,
		logger:      logger,
	}
}

// HandleEmergency godoc
// @Summary Обработка экстренного вызова
// @Description Геокодирует адрес, находит ближайшую больницу и возвращает маршрут до неё
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body dto.EmergencyRequest true "Адрес и описание происшествия"
// @Success 200 {object} dto.EmergencyResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /emergency [post]
func (h *EmergencyHandler) HandleEmergency(c *fiber.Ctx) error {
	var req dto.EmergencyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrFieldsRequired)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrFieldsRequired)
	}

	result, err := h.emergencyUC.HandleEmergency(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result)
}
