package repository

import (
	"context"

	"github.com/emergency-microservice/internal/domain"
)

// MapsRepository определяет операции внешнего провайдера карт.
// Каждая операция сначала проверяет кеш по собственному ключу.
type MapsRepository interface {
	// Geocode преобразует адрес в координаты
	Geocode(ctx context.Context, address string) (*domain.Location, error)

	// FindNearbyHospitals возвращает сырые результаты поиска больниц
	// в радиусе вокруг точки (до дедупликации)
	FindNearbyHospitals(ctx context.Context, location domain.Location) ([]domain.PlaceResult, error)

	// GetDirections возвращает маршрут от точки до места по его place_id
	GetDirections(ctx context.Context, origin domain.Location, destinationID string) (*domain.Route, error)
}
