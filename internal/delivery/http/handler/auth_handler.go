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

// AuthHandler - обработчик регистрации и входа
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

// NewAuthHandler - создание нового AuthHandler
func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// SignUp godoc
// @Summary Регистрация пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Email и пароль"
// @Success 201 {object} dto.SignUpResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrEmailPasswordRequired)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrEmailPasswordRequired)
	}

	if err := h.authUC.SignUp(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, dto.SignUpResponse{Message: "Signup successful"})
}

// SignIn godoc
// @Summary Вход пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Email и пароль"
// @Success 200 {object} dto.SignInResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrEmailPasswordRequired)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrEmailPasswordRequired)
	}

	token, err := h.authUC.SignIn(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SignInResponse{
		Message: "Signin successful",
		Token:   token,
	})
}
