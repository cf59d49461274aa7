package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emergency-microservice/internal/domain"
	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/emergency-microservice/internal/usecase"
	"github.com/emergency-microservice/internal/usecase/dto"
)

// MockMapsRepository is a mock of MapsRepository
type MockMapsRepository struct {
	mock.Mock
}

func (m *MockMapsRepository) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockMapsRepository) FindNearbyHospitals(ctx context.Context, location domain.Location) ([]domain.PlaceResult, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlaceResult), args.Error(1)
}

func (m *MockMapsRepository) GetDirections(ctx context.Context, origin domain.Location, destinationID string) (*domain.Route, error) {
	args := m.Called(ctx, origin, destinationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

// MockHospitalRepository is a mock of HospitalRepository
type MockHospitalRepository struct {
	mock.Mock
}

func (m *MockHospitalRepository) GetByPlaceID(ctx context.Context, placeID string) (*domain.Hospital, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) FindOrCreate(ctx context.Context, candidate domain.PlaceResult) (*domain.Hospital, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) SaveAll(ctx context.Context, candidates []domain.PlaceResult) ([]*domain.Hospital, error) {
	args := m.Called(ctx, candidates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Hospital), args.Error(1)
}

func TestEmergencyUseCase_HandleEmergency(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	bakerSt := domain.Location{Lat: 51.5237, Lng: -0.1585}
	stMarys := domain.PlaceResult{
		PlaceID:  "abc123",
		Name:     "St Mary's Hospital",
		Vicinity: "Praed St, London",
		Geometry: domain.Geometry{Location: domain.Location{Lat: 51.5174, Lng: -0.1739}},
	}
	stMarysRecord := &domain.Hospital{
		ID:      "6f1b0a1e-0000-0000-0000-000000000001",
		PlaceID: "abc123",
		Name:    "St Mary's Hospital",
		Address: "Praed St, London",
		Lat:     51.5174,
		Lng:     -0.1739,
	}

	t.Run("happy path", func(t *testing.T) {
		mapsRepo := &MockMapsRepository{}
		hospitalRepo := &MockHospitalRepository{}
		uc := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, logger)

		route := &domain.Route{Summary: "A501"}

		mapsRepo.On("Geocode", ctx, "221B Baker St").Return(&bakerSt, nil)
		mapsRepo.On("FindNearbyHospitals", ctx, bakerSt).Return([]domain.PlaceResult{stMarys}, nil)
		hospitalRepo.On("SaveAll", ctx, []domain.PlaceResult{stMarys}).Return([]*domain.Hospital{stMarysRecord}, nil)
		mapsRepo.On("GetDirections", ctx, bakerSt, "abc123").Return(route, nil)

		result, err := uc.HandleEmergency(ctx, dto.EmergencyRequest{
			Address: "221B Baker St",
			Details: "Suspected cardiac arrest",
		})

		require.NoError(t, err)
		assert.Equal(t, "221B Baker St", result.EmergencyDetails.Address)
		assert.Equal(t, "Suspected cardiac arrest", result.EmergencyDetails.Details)
		assert.Equal(t, bakerSt, result.EmergencyLocation)
		assert.Equal(t, "St Mary's Hospital", result.NearestHospital.Name)
		assert.Equal(t, "Praed St, London", result.NearestHospital.Address)
		assert.Equal(t, domain.Location{Lat: 51.5174, Lng: -0.1739}, result.NearestHospital.Location)
		require.NotNil(t, result.Route)
		assert.Equal(t, "A501", result.Route.Summary)

		mapsRepo.AssertExpectations(t)
		hospitalRepo.AssertExpectations(t)
	})

	t.Run("missing details makes no provider calls", func(t *testing.T) {
		mapsRepo := &MockMapsRepository{}
		hospitalRepo := &MockHospitalRepository{}
		uc := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, logger)

		result, err := uc.HandleEmergency(ctx, dto.EmergencyRequest{Address: "221B Baker St"})

		assert.Nil(t, result)
		assert.Equal(t, errors.ErrFieldsRequired, err)
		mapsRepo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
		mapsRepo.AssertNotCalled(t, "FindNearbyHospitals", mock.Anything, mock.Anything)
	})

	t.Run("blank address makes no provider calls", func(t *testing.T) {
		mapsRepo := &MockMapsRepository{}
		hospitalRepo := &MockHospitalRepository{}
		uc := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, logger)

		result, err := uc.HandleEmergency(ctx, dto.EmergencyRequest{Address: "   ", Details: "help"})

		assert.Nil(t, result)
		assert.Equal(t, errors.ErrFieldsRequired, err)
		mapsRepo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})

	t.Run("no hospitals found skips directions", func(t *testing.T) {
		mapsRepo := &MockMapsRepository{}
		hospitalRepo := &MockHospitalRepository{}
		uc := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, logger)

		mapsRepo.On("Geocode", ctx, "221B Baker St").Return(&bakerSt, nil)
		mapsRepo.On("FindNearbyHospitals", ctx, bakerSt).Return([]domain.PlaceResult{}, nil)
		hospitalRepo.On("SaveAll", ctx, []domain.PlaceResult{}).Return([]*domain.Hospital{}, nil)

		result, err := uc.HandleEmergency(ctx, dto.EmergencyRequest{
			Address: "221B Baker St",
			Details: "help",
		})

		assert.Nil(t, result)
		assert.Equal(t, errors.ErrNoHospitalsFound, err)
		mapsRepo.AssertNotCalled(t, "GetDirections", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("geocode failure stops the pipeline", func(t *testing.T) {
		mapsRepo := &MockMapsRepository{}
		hospitalRepo := &MockHospitalRepository{}
		uc := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, logger)

		mapsRepo.On("Geocode", ctx, "nowhere").Return(nil, errors.ErrProviderUnavailable)

		result, err := uc.HandleEmergency(ctx, dto.EmergencyRequest{
			Address: "nowhere",
			Details: "help",
		})

		assert.Nil(t, result)
		assert.Equal(t, errors.ErrProviderUnavailable, err)
		mapsRepo.AssertNotCalled(t, "FindNearbyHospitals", mock.Anything, mock.Anything)
		mapsRepo.AssertNotCalled(t, "GetDirections", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure aborts before directions", func(t *testing.T) {
		mapsRepo := &MockMapsRepository{}
		hospitalRepo := &MockHospitalRepository{}
		uc := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, logger)

		mapsRepo.On("Geocode", ctx, "221B Baker St").Return(&bakerSt, nil)
		mapsRepo.On("FindNearbyHospitals", ctx, bakerSt).Return([]domain.PlaceResult{stMarys}, nil)
		hospitalRepo.On("SaveAll", ctx, []domain.PlaceResult{stMarys}).Return(nil, errors.ErrDatabaseError)

		result, err := uc.HandleEmergency(ctx, dto.EmergencyRequest{
			Address: "221B Baker St",
			Details: "help",
		})

		assert.Nil(t, result)
		assert.Equal(t, errors.ErrDatabaseError, err)
		mapsRepo.AssertNotCalled(t, "GetDirections", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("first provider result is treated as nearest", func(t *testing.T) {
		mapsRepo := &MockMapsRepository{}
		hospitalRepo := &MockHospitalRepository{}
		uc := usecase.NewEmergencyUseCase(mapsRepo, hospitalRepo, logger)

		second := domain.PlaceResult{PlaceID: "def456", Name: "Royal Free Hospital"}
		secondRecord := &domain.Hospital{PlaceID: "def456", Name: "Royal Free Hospital"}

		mapsRepo.On("Geocode", ctx, "221B Baker St").Return(&bakerSt, nil)
		mapsRepo.On("FindNearbyHospitals", ctx, bakerSt).
			Return([]domain.PlaceResult{stMarys, second}, nil)
		hospitalRepo.On("SaveAll", ctx, []domain.PlaceResult{stMarys, second}).
			Return([]*domain.Hospital{stMarysRecord, secondRecord}, nil)
		mapsRepo.On("GetDirections", ctx, bakerSt, "abc123").
			Return(&domain.Route{Summary: "A501"}, nil)

		result, err := uc.HandleEmergency(ctx, dto.EmergencyRequest{
			Address: "221B Baker St",
			Details: "help",
		})

		require.NoError(t, err)
		assert.Equal(t, "St Mary's Hospital", result.NearestHospital.Name)
	})
}
