package repository

import (
	"context"

	"github.com/emergency-microservice/internal/domain"
)

// HospitalRepository хранит канонические записи больниц,
// дедуплицированные по внешнему идентификатору места.
type HospitalRepository interface {
	// GetByPlaceID возвращает запись по place_id, (nil, nil) если её нет
	GetByPlaceID(ctx context.Context, placeID string) (*domain.Hospital, error)

	// FindOrCreate возвращает существующую запись или создаёт новую из
	// кандидата. Поля существующей записи НЕ обновляются - first write wins.
	FindOrCreate(ctx context.Context, candidate domain.PlaceResult) (*domain.Hospital, error)

	// SaveAll обрабатывает кандидатов по порядку и возвращает канонические
	// записи в том же порядке. Ошибка прерывает остаток пакета, уже
	// созданные записи остаются.
	SaveAll(ctx context.Context, candidates []domain.PlaceResult) ([]*domain.Hospital, error)
}
