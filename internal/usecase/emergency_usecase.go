package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/emergency-microservice/internal/domain/repository"
	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/emergency-microservice/internal/usecase/dto"
)

// EmergencyUseCase - use case обработки экстренного вызова:
// геокодирование -> поиск больниц -> дедупликация -> маршрут
type EmergencyUseCase struct {
	mapsRepo     repository.MapsRepository
	hospitalRepo repository.HospitalRepository
	logger       *zap.Logger
}

// NewEmergencyUseCase - создание нового EmergencyUseCase
func NewEmergencyUseCase(
	mapsRepo repository.MapsRepository,
	hospitalRepo repository.HospitalRepository,
	logger *zap.Logger,
) *EmergencyUseCase {
	return &EmergencyUseCase{
		mapsRepo:     mapsRepo,
		hospitalRepo: hospitalRepo,
		logger:       logger,
	}
}

// HandleEmergency выполняет линейный конвейер. Любая ошибка шага
// прерывает оставшиеся шаги, ничего не перезапускается и не глотается.
func (uc *EmergencyUseCase) HandleEmergency(ctx context.Context, req dto.EmergencyRequest) (*dto.EmergencyResponse, error) {
	// Шаг 1: валидация обязательных полей
	if strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.Details) == "" {
		return nil, errors.ErrFieldsRequired
	}

	// Шаг 2: геокодирование адреса
	location, err := uc.mapsRepo.Geocode(ctx, req.Address)
	if err != nil {
		uc.logger.Error("Failed to geocode emergency address", zap.Error(err))
		return nil, err
	}

	// Шаг 3: поиск ближайших больниц и дедупликация через репозиторий
	results, err := uc.mapsRepo.FindNearbyHospitals(ctx, *location)
	if err != nil {
		uc.logger.Error("Failed to find nearby hospitals", zap.Error(err))
		return nil, err
	}

	hospitals, err := uc.hospitalRepo.SaveAll(ctx, results)
	if err != nil {
		uc.logger.Error("Failed to persist hospital records", zap.Error(err))
		return nil, err
	}

	if len(hospitals) == 0 {
		return nil, errors.ErrNoHospitalsFound
	}

	// Шаг 4: первый результат провайдера считается ближайшим,
	// собственная дистанция не вычисляется
	nearest := hospitals[0]

	// Шаг 5: маршрут до выбранной больницы
	route, err := uc.mapsRepo.GetDirections(ctx, *location, nearest.PlaceID)
	if err != nil {
		uc.logger.Error("Failed to get directions",
			zap.String("place_id", nearest.PlaceID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Emergency handled",
		zap.String("address", req.Address),
		zap.String("nearest_hospital", nearest.Name),
		zap.Int("hospitals_found", len(hospitals)))

	// Шаг 6: сборка составного ответа
	return &dto.EmergencyResponse{
		EmergencyDetails: dto.EmergencyDetails{
			Address: req.Address,
			Details: req.Details,
		},
		EmergencyLocation: *location,
		NearestHospital: dto.NearestHospital{
			Name:     nearest.Name,
			Address:  nearest.Address,
			Location: nearest.Location(),
		},
		Route: route,
	}, nil
}
