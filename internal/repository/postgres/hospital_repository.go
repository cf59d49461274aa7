package postgres

import (
	"context"
	"database/sql"

	"github.com/emergency-microservice/internal/domain"
	"github.com/emergency-microservice/internal/domain/repository"
	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type hospitalRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewHospitalRepository(db *DB) repository.HospitalRepository {
	return &hospitalRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const hospitalColumns = `id, place_id, name, address, lat, lng, phone, services, created_at`

func (r *hospitalRepository) GetByPlaceID(ctx context.Context, placeID string) (*domain.Hospital, error) {
	query := `
		SELECT ` + hospitalColumns + `
		FROM hospitals
		WHERE place_id = $1
	`

	h, err := r.scanHospital(r.db.QueryRowContext(ctx, query, placeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get hospital by place_id", zap.String("place_id", placeID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return h, nil
}

// FindOrCreate возвращает существующую запись без обновления полей
// (first write wins). Гонка двух создателей разрешается уникальным
// индексом по place_id: проигравший перечитывает запись победителя.
func (r *hospitalRepository) FindOrCreate(ctx context.Context, candidate domain.PlaceResult) (*domain.Hospital, error) {
	existing, err := r.GetByPlaceID(ctx, candidate.PlaceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := `
		INSERT INTO hospitals (id, place_id, name, address, lat, lng, phone, services)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (place_id) DO NOTHING
		RETURNING ` + hospitalColumns + `
	`

	services := candidate.Types
	if services == nil {
		services = []string{}
	}

	h, err := r.scanHospital(r.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		candidate.PlaceID,
		candidate.Name,
		candidate.Vicinity,
		candidate.Geometry.Location.Lat,
		candidate.Geometry.Location.Lng,
		candidate.FormattedPhoneNumber,
		pq.Array(services),
	))
	if err == sql.ErrNoRows {
		// Конкурентная вставка выиграла гонку - читаем её результат
		winner, rerr := r.GetByPlaceID(ctx, candidate.PlaceID)
		if rerr != nil {
			return nil, rerr
		}
		if winner == nil {
			r.logger.Error("Hospital missing after insert conflict", zap.String("place_id", candidate.PlaceID))
			return nil, errors.ErrDatabaseError
		}
		return winner, nil
	}
	if err != nil {
		r.logger.Error("Failed to create hospital", zap.String("place_id", candidate.PlaceID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	r.logger.Info("Hospital created",
		zap.String("place_id", h.PlaceID),
		zap.String("name", h.Name),
	)

	return h, nil
}

func (r *hospitalRepository) SaveAll(ctx context.Context, candidates []domain.PlaceResult) ([]*domain.Hospital, error) {
	hospitals := make([]*domain.Hospital, 0, len(candidates))

	for _, candidate := range candidates {
		h, err := r.FindOrCreate(ctx, candidate)
		if err != nil {
			// Уже созданные записи остаются, остаток пакета прерывается
			return nil, err
		}
		hospitals = append(hospitals, h)
	}

	return hospitals, nil
}

func (r *hospitalRepository) scanHospital(row *sql.Row) (*domain.Hospital, error) {
	var h domain.Hospital
	err := row.Scan(
		&h.ID, &h.PlaceID, &h.Name, &h.Address,
		&h.Lat, &h.Lng, &h.Phone, pq.Array(&h.Services), &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
