package repository

import (
	"context"

	"github.com/emergency-microservice/internal/domain"
)

// UserRepository хранит учетные записи пользователей
type UserRepository interface {
	// Create сохраняет нового пользователя, email уникален
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail возвращает пользователя по email, (nil, nil) если его нет
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
