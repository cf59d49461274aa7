package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emergency-microservice/internal/domain"
	"github.com/emergency-microservice/internal/domain/repository"
	apperrors "github.com/emergency-microservice/internal/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// uniqueViolation - код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrEmailTaken
		}
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	r.logger.Info("User created", zap.String("email", user.Email))
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &user, nil
}
