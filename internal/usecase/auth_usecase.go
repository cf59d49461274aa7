package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/emergency-microservice/internal/config"
	"github.com/emergency-microservice/internal/domain"
	"github.com/emergency-microservice/internal/domain/repository"
	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/emergency-microservice/internal/usecase/dto"
)

// AuthUseCase - регистрация и вход с выдачей bearer-токена
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthUseCase - создание нового AuthUseCase
func NewAuthUseCase(userRepo repository.UserRepository, cfg *config.AuthConfig, logger *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// SignUp регистрирует пользователя, пароль хранится только как bcrypt-хеш
func (uc *AuthUseCase) SignUp(ctx context.Context, req dto.SignUpRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return errors.ErrEmailPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return errors.ErrInternalServer
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return err
	}

	uc.logger.Info("User signed up", zap.String("email", user.Email))
	return nil
}

// SignIn проверяет учетные данные и выдает подписанный JWT
// со сроком действия tokenTTL
func (uc *AuthUseCase) SignIn(ctx context.Context, req dto.SignInRequest) (string, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return "", errors.ErrEmailPasswordRequired
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", errors.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(uc.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		uc.logger.Error("Failed to sign token", zap.Error(err))
		return "", errors.ErrInternalServer
	}

	uc.logger.Info("User signed in", zap.String("email", user.Email))
	return token, nil
}
